package validate

// FileResult is the outcome of validating one data file. An empty Errors
// slice means the file passed.
type FileResult struct {
	Path   string
	Errors []string
}

// Valid reports whether the file passed.
func (f FileResult) Valid() bool {
	return len(f.Errors) == 0
}

// Result is the outcome of one validation batch. Entries appear in manifest
// order; a failing entry never removes or reorders the others.
type Result []FileResult

// Valid reports whether every file in the batch passed.
func (r Result) Valid() bool {
	for _, file := range r {
		if !file.Valid() {
			return false
		}
	}
	return true
}
