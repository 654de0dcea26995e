// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package validators tracks the single validator set of a cluster: which
// node IDs are validators, their stake weight, and the quantum-annealing
// effective score the leader schedule uses to decide viability.
package validators

import (
	"fmt"
	"sort"
	"sync"

	"github.com/luxfi/ids"
	extvalidators "github.com/luxfi/validators"
)

// Validator is one member of the validator set. It embeds the external
// package's own Validator (ID and its Light effective-score accessor) and
// adds the stake-weight accessor our quorum math needs, the same way the
// teacher's own validator/validators.go re-exports extvalidators.Validator
// under a domain-specific name.
type Validator interface {
	extvalidators.Validator
	// Weight is the validator's stake weight, used for quorum counting.
	Weight() uint64
}

// validatorImpl embeds extvalidators.ValidatorImpl for ID/Light and layers
// Weight on top, rather than reimplementing the accessor trio from scratch.
type validatorImpl struct {
	extvalidators.ValidatorImpl
	weight uint64
}

func (v *validatorImpl) Weight() uint64 { return v.weight }

// NewValidator builds a Validator with the given stake weight and initial
// effective score.
func NewValidator(nodeID ids.NodeID, weight, light uint64) Validator {
	return &validatorImpl{
		ValidatorImpl: extvalidators.ValidatorImpl{NodeID: nodeID, LightVal: light},
		weight:        weight,
	}
}

// Set is the read view over the validator set that schedule, forwarder and
// vote-tracker code consult. It is safe for concurrent use.
type Set interface {
	// Has reports whether nodeID is a current validator.
	Has(nodeID ids.NodeID) bool
	// Len is the number of validators in the set.
	Len() int
	// List returns every validator, sorted by the string form of its NodeID.
	List() []Validator
	// Get returns the validator for nodeID, or false if absent.
	Get(nodeID ids.NodeID) (Validator, bool)
	// TotalWeight is the sum of every validator's stake weight.
	TotalWeight() uint64
	// QuorumSize is floor(2*Len()/3) + 1, the number of distinct validators
	// whose affirmative votes finalize a block.
	QuorumSize() int
	// ValidatorOutputs returns the set in the external package's own
	// GetValidatorOutput shape (NodeID/PublicKey/Weight), the DTO the
	// broadcast tree consults so its stake ordering is read off the wired
	// dependency rather than this package's own Validator interface alone.
	ValidatorOutputs() map[ids.NodeID]*extvalidators.GetValidatorOutput
}

type set struct {
	mu         sync.RWMutex
	validators map[ids.NodeID]Validator
}

// NewSet builds an empty, mutable validator set.
func NewSet() *set { //nolint:revive // constructed by Manager, not exported as a type
	return &set{validators: make(map[ids.NodeID]Validator)}
}

// Add inserts or replaces a validator.
func (s *set) Add(v Validator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.validators[v.ID()] = v
}

// Remove deletes a validator from the set.
func (s *set) Remove(nodeID ids.NodeID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.validators, nodeID)
}

// SetLight updates nodeID's effective score, returning an error if nodeID
// is not a member of the set.
func (s *set) SetLight(nodeID ids.NodeID, light uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.validators[nodeID]
	if !ok {
		return fmt.Errorf("validators: unknown node %s", nodeID)
	}
	s.validators[nodeID] = &validatorImpl{
		ValidatorImpl: extvalidators.ValidatorImpl{NodeID: nodeID, LightVal: light},
		weight:        v.Weight(),
	}
	return nil
}

func (s *set) Has(nodeID ids.NodeID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.validators[nodeID]
	return ok
}

func (s *set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.validators)
}

func (s *set) List() []Validator {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Validator, 0, len(s.validators))
	for _, v := range s.validators {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID().String() < out[j].ID().String()
	})
	return out
}

func (s *set) Get(nodeID ids.NodeID) (Validator, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.validators[nodeID]
	return v, ok
}

func (s *set) TotalWeight() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total uint64
	for _, v := range s.validators {
		total += v.Weight()
	}
	return total
}

func (s *set) QuorumSize() int {
	n := s.Len()
	return (2*n)/3 + 1
}

func (s *set) ValidatorOutputs() map[ids.NodeID]*extvalidators.GetValidatorOutput {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[ids.NodeID]*extvalidators.GetValidatorOutput, len(s.validators))
	for id, v := range s.validators {
		out[id] = &extvalidators.GetValidatorOutput{
			NodeID: id,
			Weight: v.Weight(),
		}
	}
	return out
}

// State is the view a node uses to resolve the validator set for the
// cluster it belongs to. This spec has exactly one cluster per running
// node, so unlike a multi-chain validator state there is no subnet or
// chain parameter.
type State interface {
	// Validators returns the current validator set.
	Validators() Set
}

type state struct {
	set Set
}

// NewState wraps a Set as a State.
func NewState(s Set) State { return &state{set: s} }

func (s *state) Validators() Set { return s.set }
