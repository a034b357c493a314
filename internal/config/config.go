package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values. Each field corresponds
// to an environment variable. The types reflect how the values are used
// in the application: strings for identifiers and secrets, ints for
// durations and costs, floats for distances.
type Config struct {
	Env            string  // application environment (e.g. "dev", "prod")
	Port           string  // HTTP port to listen on
	DBUser         string  // database username
	DBPass         string  // database password (optional)
	DBHost         string  // database host address
	DBPort         string  // database port number
	DBName         string  // database name
	JWTSecret      string  // secret used to sign JWTs
	AccessTTLMin   int     // access token time-to-live in minutes
	RefreshTTLDays int     // refresh token time-to-live in days
	BcryptCost     int     // bcrypt cost for password hashing
	MapsAPIKey     string  // external maps API key (not used for real geocoding)
	SearchRadiusKm float64 // default court search radius in kilometers
	OpeningTime    string  // facility opening time ("15:04")
	ClosingTime    string  // facility closing time ("15:04")
	SeedCourts     bool    // insert sample courts when the catalog is empty
	Debug          bool    // verbose request logging
}

// Load reads configuration values from environment variables and returns
// a Config. Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message. Booking-specific
// settings carry sensible defaults so a bare environment still boots.
func Load() Config {
	return Config{
		Env:            must("APP_ENV"),                        // environment (dev/test/prod)
		Port:           must("APP_PORT"),                       // port to bind the HTTP server
		DBUser:         must("DB_USER"),                        // database user
		DBPass:         os.Getenv("DB_PASS"),                   // database password (empty allowed)
		DBHost:         must("DB_HOST"),                        // database host
		DBPort:         must("DB_PORT"),                        // database port
		DBName:         must("DB_NAME"),                        // database name
		JWTSecret:      must("JWT_SECRET"),                     // secret used for signing JWTs
		AccessTTLMin:   mustInt("ACCESS_TOKEN_TTL_MIN"),        // TTL for access tokens in minutes
		RefreshTTLDays: mustInt("REFRESH_TOKEN_TTL_DAYS"),      // TTL for refresh tokens in days
		BcryptCost:     mustInt("BCRYPT_COST"),                 // bcrypt cost factor
		MapsAPIKey:     os.Getenv("MAPS_API_KEY"),              // optional, kept for future geocoding
		SearchRadiusKm: envFloat("COURT_SEARCH_RADIUS_KM", 10), // default radius for /courts
		OpeningTime:    envStr("COURT_OPENING_TIME", "06:00"),  // facility-wide opening hour
		ClosingTime:    envStr("COURT_CLOSING_TIME", "22:00"),  // facility-wide closing hour
		SeedCourts:     envBool("SEED_COURTS", true),           // seed sample courts on boot
		Debug:          envBool("APP_DEBUG", false),            // debug logging
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

// envFloat returns the variable parsed as float64 or the default when
// unset or malformed.
func envFloat(key string, d float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return d
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return f
	}
	return d
}
