// Package models holds the GORM rows of the storefront tables and their
// conversions to and from the domain aggregates.
package models
