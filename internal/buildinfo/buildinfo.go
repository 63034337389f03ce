// Package buildinfo holds values stamped at link time, e.g.
//
//	go build -ldflags "-X github.com/fdemirciler/tax-calculator-gemini/internal/buildinfo.Version=v1.2.0"
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func String() string {
	return fmt.Sprintf("taxcalc %s (commit=%s, date=%s)", Version, Commit, Date)
}
