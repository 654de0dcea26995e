// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package quannealing

import (
	vld "github.com/shubham4564/proofwithquantumannealing-sub001/validators"
)

// ValidatorState is the thin view of the validator set that deep call
// chains (leader schedule, vote tracker) resolve through context rather
// than through a direct dependency on the validators package.
type ValidatorState = vld.State
