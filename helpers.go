package feeddetector

import (
	"path"
	"path/filepath"
	"runtime"

	"github.com/alecthomas/log4go"
)

// LoadTestConfig loads the given test config yaml file. The given path is
// assumed to be relative to the `feed-detector/test/` directory, the
// location of the test fixtures. This will panic if it cannot read the
// requested config file. If you expect an error or are testing
// ReadConfigFile itself, use GetTestFileDir instead.
func LoadTestConfig(filename string) {
	testdir := GetTestFileDir()
	if err := ReadConfigFile(path.Join(testdir, filename)); err != nil {
		panic(err.Error())
	}
}

// GetTestFileDir returns the directory where shared test fixtures are
// stored. It will panic if it could not get the path from the runtime.
func GetTestFileDir() string {
	_, p, _, ok := runtime.Caller(0)
	if !ok {
		panic("Failed to get location of test source file")
	}
	if !filepath.IsAbs(p) {
		log4go.Warn("Tried to use runtime.Caller to get the test file "+
			"directory, but the path is incorrect: %v\nMost likely this means the "+
			"-cover flag was used with `go test`. Returning './test' as the test "+
			"directory; if CWD != the module root, tests will fail.", p)
		return "test"
	}
	return path.Join(path.Dir(p), "test")
}
