// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package quannealing

import (
	"github.com/luxfi/log"

	qlog "github.com/shubham4564/proofwithquantumannealing-sub001/log"
)

// NoOpLogger returns the package-wide fallback logger for call sites that
// did not receive one through context.
func NoOpLogger() log.Logger {
	return qlog.NewNoOpLogger()
}
