package config

import (
	"flag"
	"os"
	"time"

	"github.com/akarpov87/custauth/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-b string   storage backend: memory, postgres, or dynamodb
//	-d string   PostgreSQL DSN
//	-s string   session token HMAC secret
//	-r string   reset token HMAC secret
//	-t int      session token validity, minutes
//	-o int      reset token validity, minutes
//	-g string   AWS region
//	-u string   AWS access key id (empty: default credential chain)
//	-p string   AWS secret access key
//	-e string   AWS base endpoint (e.g., a local DynamoDB)
//	-m string   DynamoDB customers table name
//	-n string   DynamoDB tokens table name
//	-x string   email backend: memory or ses
//	-f string   email From address
//	-l string   base URL embedded in reset links
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components. Duration
// flags are accepted as integers in minutes.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{
		"-a", "-b", "-d", "-s", "-r", "-t", "-o", "-g", "-u", "-p", "-e", "-m", "-n", "-x", "-f", "-l",
	})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.StorageBackend, "b", config.StorageBackend, "storage backend")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SessionSecretKey, "s", config.SessionSecretKey, "session token secret key")
	fs.StringVar(&config.ResetSecretKey, "r", config.ResetSecretKey, "reset token secret key")

	sessionValidity := fs.Int("t", int(config.SessionTokenValidity.Minutes()), "session_token_validity (in minutes)")
	resetValidity := fs.Int("o", int(config.ResetTokenValidity.Minutes()), "reset_token_validity (in minutes)")

	fs.StringVar(&config.AWSRegion, "g", config.AWSRegion, "AWS region")
	fs.StringVar(&config.AWSAccessKeyID, "u", config.AWSAccessKeyID, "AWS access key id")
	fs.StringVar(&config.AWSSecretAccessKey, "p", config.AWSSecretAccessKey, "AWS secret access key")
	fs.StringVar(&config.AWSBaseEndpoint, "e", config.AWSBaseEndpoint, "AWS base endpoint")
	fs.StringVar(&config.CustomerTable, "m", config.CustomerTable, "DynamoDB customers table")
	fs.StringVar(&config.TokenTable, "n", config.TokenTable, "DynamoDB tokens table")
	fs.StringVar(&config.EmailBackend, "x", config.EmailBackend, "email backend")
	fs.StringVar(&config.EmailFrom, "f", config.EmailFrom, "email From address")
	fs.StringVar(&config.ResetLinkBase, "l", config.ResetLinkBase, "base URL for reset links")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.SessionTokenValidity = time.Duration(*sessionValidity) * time.Minute
	config.ResetTokenValidity = time.Duration(*resetValidity) * time.Minute
}
