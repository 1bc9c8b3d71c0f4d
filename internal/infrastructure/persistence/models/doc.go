// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer free
// from ORM concerns.
//
// Structure:
//   - base.go: base persistence models shared by every table
//   - tenant.go: the tenant directory
//   - hr.go: employees, leave requests and their reference data
package models
