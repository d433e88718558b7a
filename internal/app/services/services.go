// Package services holds the business logic of the platform.
//
// Services defined in this package:
// - CatalogService: read and query operations over the course catalog
// - EnrollmentService: enrollment lifecycle, capacity and waitlist handling
// - MessageService: message log queries, sending and thread summaries
// - AuthService: credential checks, registration and the session record
package services
