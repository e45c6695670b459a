package config

import (
	"flag"
	"io"
	"time"
)

// flagValues collects command-line overrides. Only flags that were actually
// passed are applied, so they win over the environment and the JSON file
// without resetting them to flag defaults.
//
// Supported flags:
//
//	-a string   HTTP bind address (e.g. ":8080")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret
//	-t int      access token validity, minutes
//	-f string   CSV file used by the bulk import
//	-c/-config  path to a JSON config file
type flagValues struct {
	configFile string
	httpAddr   string
	dsn        string
	secret     string
	tokenTTL   int
	importFile string
}

func parseFlags(args []string) (*flagValues, *flag.FlagSet, error) {
	fv := &flagValues{}

	fs := flag.NewFlagSet("moviecatalog", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&fv.configFile, "config", "", "path to JSON config file")
	fs.StringVar(&fv.configFile, "c", "", "path to JSON config file (short)")
	fs.StringVar(&fv.httpAddr, "a", "", "address and port to run server")
	fs.StringVar(&fv.dsn, "d", "", "database DSN")
	fs.StringVar(&fv.secret, "s", "", "JWT secret key")
	fs.IntVar(&fv.tokenTTL, "t", 0, "access token validity (in minutes)")
	fs.StringVar(&fv.importFile, "f", "", "CSV file for bulk import")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return fv, fs, nil
}

func (fv *flagValues) apply(c *Config, fs *flag.FlagSet) {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "a":
			c.HTTPAddr = fv.httpAddr
		case "d":
			c.DatabaseDSN = fv.dsn
		case "s":
			c.JWTSecret = fv.secret
		case "t":
			if fv.tokenTTL > 0 {
				c.AccessTokenTTL = time.Duration(fv.tokenTTL) * time.Minute
			}
		case "f":
			c.ImportFile = fv.importFile
		}
	})
}
