package logship

import (
	"github.com/bft-labs/logship/pkg/formatter"
	"github.com/bft-labs/logship/pkg/log"
	"github.com/bft-labs/logship/pkg/record"
	"github.com/bft-labs/logship/pkg/transport"
)

// Version information for the logship module.
const (
	// Version is the current version of the logship module.
	Version = "1.0.0"

	// MinCompatibleVersion is the minimum version that is compatible with this version.
	MinCompatibleVersion = "1.0.0"
)

// ModuleVersions returns the versions of all logship sub-modules.
func ModuleVersions() map[string]string {
	return map[string]string{
		"logship":   Version,
		"record":    record.Version,
		"formatter": formatter.Version,
		"transport": transport.Version,
		"log":       log.Version,
	}
}
