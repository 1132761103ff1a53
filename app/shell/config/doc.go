// Package config loads the configuration of the library catalog application.
//
// Values are resolved in this order, later steps overriding earlier ones:
// built-in defaults, an optional YAML file, an optional .env file, LIBRARY_*
// environment variables and finally caller overrides such as command line
// flags. The result is validated before it is returned.
//
// The package also contains the factory functions opening PostgreSQL
// connections with the three supported drivers (pgx.Pool, sql.DB, sqlx.DB).
package config
