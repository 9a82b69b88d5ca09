package server

import (
	"html/template"
	"net/http"
	"strings"

	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/codelens-ai/pydebug/service"
)

// highlightPython renders the source as standalone highlighted HTML
func highlightPython(source string) (string, error) {
	lexer := lexers.Get("python")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	style := styles.Get("colorful")
	if style == nil {
		style = styles.Fallback
	}
	formatter := html.New(html.WithLineNumbers(true), html.Standalone(false))

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	if err := formatter.Format(&sb, style, iterator); err != nil {
		return "", err
	}
	return sb.String(), nil
}

type indexData struct {
	HasPassword bool
	Samples     []service.Sample
}

var indexTemplate = template.Must(template.New("index").Parse(indexHTML))

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := indexTemplate.Execute(w, indexData{
		HasPassword: s.cfg.Server.Password != "",
		Samples:     service.Samples(),
	})
	if err != nil {
		s.logger.Error("failed to render index", "error", err)
	}
}

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>AI Code Debugger</title>
<style>
body { font-family: -apple-system, "Segoe UI", sans-serif; margin: 0; background: #fafafa; color: #222; }
header { background: #2d2d2d; color: #fff; padding: 14px 24px; }
header h1 { margin: 0; font-size: 1.2em; }
main { display: flex; gap: 16px; padding: 16px 24px; align-items: flex-start; }
#left { flex: 2; }
#sidebar { flex: 1; background: #fff; border: 1px solid #ddd; border-radius: 6px; padding: 12px; }
textarea { width: 100%; box-sizing: border-box; font-family: monospace; font-size: 13px; border: 1px solid #ccc; border-radius: 4px; padding: 8px; }
#code { height: 260px; }
#errmsg { height: 70px; }
select, input[type=password] { padding: 6px; margin: 6px 0; }
button { background: #1565c0; color: #fff; border: 0; border-radius: 4px; padding: 9px 18px; cursor: pointer; font-size: 1em; }
button:disabled { background: #999; }
.panel { background: #fff; border: 1px solid #ddd; border-radius: 6px; padding: 12px; margin-top: 12px; }
.panel h3 { margin-top: 0; }
.finding { padding: 6px 8px; margin: 4px 0; border-radius: 4px; background: #fff8e1; border-left: 3px solid #f9a825; font-size: 0.9em; }
.finding.error { background: #ffebee; border-left-color: #c62828; }
.finding.info { background: #e3f2fd; border-left-color: #1565c0; }
.hist { font-size: 0.85em; border-bottom: 1px solid #eee; padding: 6px 0; }
pre.fix { background: #272822; color: #f8f8f2; padding: 10px; border-radius: 4px; overflow-x: auto; }
#error-box { color: #c62828; margin-top: 8px; }
footer { padding: 12px 24px; font-size: 0.8em; color: #888; }
</style>
</head>
<body>
<header><h1>🛠️ AI-Based Code Debugging Assistant</h1></header>
<main>
<div id="left">
  <div class="panel">
    <h3>Paste your code or try a sample</h3>
    {{if .HasPassword}}
    <div><input type="password" id="password" placeholder="Access password"></div>
    {{end}}
    <div>
      <select id="sample">
        <option value="">(None)</option>
        {{range .Samples}}<option value="{{.Name}}">{{.Name}}</option>{{end}}
      </select>
    </div>
    <textarea id="code" placeholder="Paste your code here..."></textarea>
    <textarea id="errmsg" placeholder="Paste any error messages here... (optional)"></textarea>
    <div style="margin-top:8px">
      <button id="analyze">Analyze &amp; Debug</button>
      <label style="font-size:0.85em"><input type="checkbox" id="explain" checked> ask the AI</label>
    </div>
    <div id="error-box"></div>
  </div>
  <div id="results"></div>
</div>
<div id="sidebar">
  <h3>📝 Session History</h3>
  <div id="history"><em>No analyses yet.</em></div>
</div>
</main>
<footer>pydebug — static checks plus AI-powered explanations</footer>
<script>
const sampleCodes = {};
{{range .Samples}}sampleCodes[{{.Name}}] = {{.Code}};
{{end}}

document.getElementById('sample').addEventListener('change', function () {
  if (this.value) document.getElementById('code').value = sampleCodes[this.value];
});

function authHeaders() {
  const h = {'Content-Type': 'application/json'};
  const pw = document.getElementById('password');
  if (pw && pw.value) h['Authorization'] = 'Bearer ' + pw.value;
  return h;
}

function esc(s) {
  const d = document.createElement('div');
  d.textContent = s;
  return d.innerHTML;
}

async function refreshHistory() {
  try {
    const res = await fetch('/api/v1/history', {headers: authHeaders()});
    if (!res.ok) return;
    const entries = await res.json();
    const el = document.getElementById('history');
    if (!entries.length) { el.innerHTML = '<em>No analyses yet.</em>'; return; }
    el.innerHTML = entries.map(e =>
      '<div class="hist"><strong>' + new Date(e.timestamp).toLocaleTimeString() +
      '</strong><br>' + esc(e.summary) + '</div>').join('');
  } catch (err) { /* history is best effort */ }
}

document.getElementById('analyze').addEventListener('click', async function () {
  const code = document.getElementById('code').value;
  const errBox = document.getElementById('error-box');
  errBox.textContent = '';
  if (!code.trim()) { errBox.textContent = 'Please enter some code to analyze'; return; }

  const btn = this;
  btn.disabled = true;
  btn.textContent = 'Analyzing…';
  try {
    const res = await fetch('/api/v1/analyze', {
      method: 'POST',
      headers: authHeaders(),
      body: JSON.stringify({
        code: code,
        error_message: document.getElementById('errmsg').value,
        explain: document.getElementById('explain').checked
      })
    });
    const body = await res.json();
    if (!res.ok) { errBox.textContent = body.error || res.statusText; return; }
    renderResults(body);
    refreshHistory();
  } catch (err) {
    errBox.textContent = 'Request failed: ' + err;
  } finally {
    btn.disabled = false;
    btn.textContent = 'Analyze & Debug';
  }
});

function renderResults(body) {
  const report = body.report;
  let out = '<div class="panel"><h3>Static Analysis</h3>';
  if (report.parse_failure) {
    out += '<div class="finding error">' + esc(report.parse_failure) + '</div>';
  }
  if (report.findings.length) {
    for (const f of report.findings) {
      out += '<div class="finding ' + f.severity + '">line ' + f.location.line +
        ': ' + esc(f.message) + ' <small>(' + f.rule_id + ')</small></div>';
    }
  } else if (!report.parse_failure) {
    out += '<p>No obvious issues found via static analysis</p>';
  }
  out += '</div>';

  const ex = report.explanation;
  if (ex.success) {
    out += '<div class="panel"><h3>AI Explanation</h3><p>' + esc(ex.text) + '</p></div>';
    if (ex.suggested_fix) {
      out += '<div class="panel"><h3>Suggested Fix</h3><pre class="fix">' + esc(ex.suggested_fix) + '</pre></div>';
    }
    if (ex.tips) {
      out += '<div class="panel"><h3>Additional Tips</h3><p>' + esc(ex.tips) + '</p></div>';
    }
  } else if (ex.error_message) {
    out += '<div class="panel"><h3>AI Explanation</h3><p class="finding error">' + esc(ex.error_message) + '</p></div>';
  }

  if (body.source_html) {
    out += '<div class="panel"><h3>Submitted Code</h3>' + body.source_html + '</div>';
  }

  out += '<div class="panel"><a href="#" id="download" data-id="' + report.id +
    '">📥 Download Report</a></div>';

  document.getElementById('results').innerHTML = out;
  document.getElementById('download').addEventListener('click', async function (ev) {
    ev.preventDefault();
    const res = await fetch('/api/v1/reports/' + this.dataset.id + '/markdown', {headers: authHeaders()});
    if (!res.ok) return;
    const blob = await res.blob();
    const a = document.createElement('a');
    a.href = URL.createObjectURL(blob);
    a.download = 'debug_report.md';
    a.click();
    URL.revokeObjectURL(a.href);
  });
}

refreshHistory();
</script>
</body>
</html>
`
