// Package config loads, normalizes, and validates flavorcheck configuration.
//
// It supplies defaults, reads TOML files from --config, the user config
// directory or ./flavorcheck.toml, and honours environment fallbacks for the
// Kaltura credentials (KALTURA_PARTNER_ID, KALTURA_ADMIN_SECRET,
// KALTURA_ADMIN_USER_ID, KALTURA_SERVICE_URL). Validation uses struct tags
// plus a few cross-field rules and names offending keys as they appear in the
// file.
package config
