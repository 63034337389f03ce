// Package domain contains the core model for taxcalc: bracket tables, the
// progressive tax calculation, input normalization and derived metrics.
//
// The domain is transport- and persistence-agnostic: it does not depend on YAML parsing,
// terminals, or the filesystem. Infra/adapters map into/from these types.
package domain
