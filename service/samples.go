package service

// Sample is a small buggy Python snippet used for quick testing
type Sample struct {
	Name string `json:"name" yaml:"name"`
	Code string `json:"code" yaml:"code"`
}

// Samples returns the built-in sample snippets in display order
func Samples() []Sample {
	return []Sample{
		{
			Name: "Simple Syntax Error",
			Code: "def foo()\n    print('Hello')",
		},
		{
			Name: "Division by Zero",
			Code: "x = 1\ny = 0\nprint(x / y)",
		},
		{
			Name: "Uninitialized Variable",
			Code: "def bar():\n    print(a)",
		},
		{
			Name: "Debug Print",
			Code: "def test():\n    print('debug')\n    return 42",
		},
	}
}

// FindSample returns the sample with the given name
func FindSample(name string) (Sample, bool) {
	for _, s := range Samples() {
		if s.Name == name {
			return s, true
		}
	}
	return Sample{}, false
}
