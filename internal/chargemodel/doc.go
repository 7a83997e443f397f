// Package chargemodel implements the pricing models that turn a period's aggregated
// usage into a fee: standard, percentage, graduated, volume and package.
//
// Every model is a stateless value. Apply validates its configuration and the
// aggregation, computes a pre-tax amount in the currency's major unit and reports
// the outcome as a domain.Result. Rounding to minor units happens later, once, at
// the billing boundary.
package chargemodel
