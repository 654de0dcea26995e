// Copyright (C) 2019-2024, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package quannealing

import "context"

// ContextInitializable can be initialized with a context, for a component
// whose startup needs to observe cancellation from the start. No type in
// this module implements it.
type ContextInitializable interface {
	InitCtx(context.Context)
}

// Contextualizable performs fallible context-dependent initialization.
type Contextualizable interface {
	InitializeContext(context.Context) error
}
