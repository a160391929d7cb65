package shell

import (
	"os"

	"github.com/arthur-debert/macstage/pkg/logging"
	"github.com/shirou/gopsutil/v3/process"
)

// EnvShell holds the login shell
const EnvShell = "SHELL"

// Detector finds the active shell. The lookups are replaceable in tests.
type Detector struct {
	// ParentName returns the name of the process that started macstage
	ParentName func() (string, error)
	// Getenv reads environment variables
	Getenv func(string) string
}

// NewDetector returns a Detector backed by the process table and environment
func NewDetector() *Detector {
	return &Detector{
		ParentName: parentProcessName,
		Getenv:     os.Getenv,
	}
}

// Detect prefers the parent process, which is the shell macstage was typed
// into, and falls back to $SHELL
func (d *Detector) Detect() Shell {
	logger := logging.GetLogger("shell")

	if d.ParentName != nil {
		name, err := d.ParentName()
		if err != nil {
			logger.Debug().Err(err).Msg("Cannot read parent process")
		} else if s := Parse(name); s.Supported() {
			logger.Debug().Str("shell", s.String()).Str("source", "parent").Msg("Detected shell")
			return s
		}
	}

	if d.Getenv != nil {
		if s := Parse(d.Getenv(EnvShell)); s.Supported() {
			logger.Debug().Str("shell", s.String()).Str("source", EnvShell).Msg("Detected shell")
			return s
		}
	}

	logger.Debug().Msg("No supported shell detected")
	return Unsupported
}

// Detect uses the default Detector
func Detect() Shell {
	return NewDetector().Detect()
}

func parentProcessName() (string, error) {
	p, err := process.NewProcess(int32(os.Getppid()))
	if err != nil {
		return "", err
	}
	return p.Name()
}
