package constants

// Raw sqlx queries for the batched reference lookups used during bulk
// ingestion. One query per identifier set, expanded with sqlx.In.
const (
	FindAirportsByICAOSet = `
	SELECT * FROM airports WHERE UPPER(icao) IN (?)
	`

	FindAirportsByIATASet = `
	SELECT * FROM airports WHERE UPPER(iata) IN (?)
	`

	FindAirlinesByCodeSet = `
	SELECT * FROM airlines WHERE UPPER(icao) IN (?) OR UPPER(iata) IN (?)
	`
)
