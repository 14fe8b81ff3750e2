// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package authz implements role-based authorization decisions for the
// admin panel. Decisions are pure: the gate holds no state and performs
// no I/O, so handlers can call it with the principal they already have
// and tests can cover the full policy table without a web layer.
package authz

import "pressroom/internal/models"

// Operation identifies what the principal is trying to do.
type Operation string

const (
	OpList       Operation = "list"
	OpCreateForm Operation = "viewCreateForm"
	OpCreate     Operation = "create"
	OpView       Operation = "view"
	OpEditForm   Operation = "viewEditForm"
	OpUpdate     Operation = "update"
	OpDelete     Operation = "delete"
)

// Operations lists every operation the gate knows about.
var Operations = []Operation{
	OpList, OpCreateForm, OpCreate, OpView, OpEditForm, OpUpdate, OpDelete,
}

// Entity identifies the record type an operation targets.
type Entity string

const (
	EntityCategory Entity = "category"
	EntityPost     Entity = "post"
)

// Decision is the outcome of an authorization check.
type Decision int

const (
	Denied Decision = iota
	Allowed
)

// policy maps (role, entity, operation) to an allow decision. Roles or
// operations absent from the table are denied.
var policy = map[models.Role]map[Entity]map[Operation]bool{
	models.RoleAdmin: {
		EntityCategory: allOps(),
		EntityPost:     allOps(),
	},
}

func allOps() map[Operation]bool {
	m := make(map[Operation]bool, len(Operations))
	for _, op := range Operations {
		m[op] = true
	}
	return m
}

// Decide returns whether a principal with the given role may perform the
// operation on the entity type. It never consults ambient state; callers
// must pass the principal's role explicitly.
func Decide(role models.Role, op Operation, entity Entity) Decision {
	if policy[role][entity][op] {
		return Allowed
	}
	return Denied
}
