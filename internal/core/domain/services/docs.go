// Package services provides the domain services of the ordering saga.
//
// The package includes:
//   - OrderDomainService: applies restaurant policy to new orders and drives the Order
//     aggregate through its saga transitions, returning the domain event each transition
//     raises
//
// Domain services are stateless and never touch storage or brokers. Application handlers
// load the aggregates, call the service and persist the result.
package services
