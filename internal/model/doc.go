// Package model defines the data types shared across the pipeline.
//
// Conventions:
//   - Quote fields follow the canonical column order: date, symbol, price,
//     volume. The archived CSV and the database insert both use it.
//   - Prices are adjusted-close values as reported by the provider.
//   - Trade dates are UTC.
package model
