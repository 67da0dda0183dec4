// Package utils provides common utility functions for the photo sync service.
// It includes loose type coercion helpers used when normalizing the remote
// service's inconsistently typed payload fields.
package utils
