package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/drsgate/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-b string   outbox bucket name
//	-i string   DRS server URI ("drs://.../")
//	-r int      retry-after hint for unstaged objects, seconds
//	-t int      download token validity, seconds
//	-e string   EKSS base URL
//	-s string   JWT HMAC secret key
//	-q string   AMQP connection URL
//	-U string   S3 root user
//	-P string   S3 root password
//	-g string   S3 region
//	-o string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//
// Args are first filtered with flagx.FilterArgs so flags owned by other
// components do not collide. Duration flags are integers in seconds.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:],
		[]string{"-a", "-d", "-b", "-i", "-r", "-t", "-e", "-s", "-q", "-U", "-P", "-g", "-o"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.OutboxBucket, "b", config.OutboxBucket, "outbox bucket name")
	fs.StringVar(&config.DrsServerURI, "i", config.DrsServerURI, "DRS server URI (drs://.../)")

	retryAccessAfter := fs.Int("r", int(config.RetryAccessAfter.Seconds()), "retry_access_after (in seconds)")
	tokenValidity := fs.Int("t", int(config.TokenValidity.Seconds()), "token_validity (in seconds)")

	fs.StringVar(&config.EkssBaseURL, "e", config.EkssBaseURL, "EKSS base URL")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.StringVar(&config.AmqpURL, "q", config.AmqpURL, "AMQP connection URL")
	fs.StringVar(&config.S3RootUser, "U", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "P", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "o", config.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.RetryAccessAfter = time.Duration(*retryAccessAfter) * time.Second
	config.TokenValidity = time.Duration(*tokenValidity) * time.Second
}
