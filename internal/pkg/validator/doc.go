// Package validator validates request and domain structs with struct tags and
// reports failures as a field to message map.
package validator
