// Package governance implements the human-in-the-loop layer for
// AI-originated suggestions: it creates pending decisions, notifies
// approvers, routes approve/reject/modify actions through optimistic
// conditional updates, dispatches execution of adopted decisions, records
// realized outcomes and computes trust scores.
package governance
