package keystore

import (
	"strconv"
)

// Defaults for generated release keystores.
const (
	DefaultAlias    = "app"
	DefaultValidity = 10000 // days
	defaultKeyAlg   = "RSA"
	defaultKeySize  = 2048
)

// KeytoolArgs holds the arguments needed to invoke keytool -genkeypair.
type KeytoolArgs struct {
	StorePath     string // -keystore
	Alias         string // -alias
	StorePassword string // -storepass
	KeyPassword   string // -keypass
	ValidityDays  int    // -validity
	DName         string // -dname, e.g. "CN=myapp, O=acme"
}

// BuildGenKeyArgs constructs the argument list for keytool -genkeypair.
func BuildGenKeyArgs(args KeytoolArgs) []string {
	alias := args.Alias
	if alias == "" {
		alias = DefaultAlias
	}
	validity := args.ValidityDays
	if validity <= 0 {
		validity = DefaultValidity
	}

	cmdArgs := []string{
		"-genkeypair",
		"-v",
		"-keystore", args.StorePath,
		"-alias", alias,
		"-keyalg", defaultKeyAlg,
		"-keysize", strconv.Itoa(defaultKeySize),
		"-validity", strconv.Itoa(validity),
	}

	if args.StorePassword != "" {
		cmdArgs = append(cmdArgs, "-storepass", args.StorePassword)
	}
	if args.KeyPassword != "" {
		cmdArgs = append(cmdArgs, "-keypass", args.KeyPassword)
	}
	if args.DName != "" {
		cmdArgs = append(cmdArgs, "-dname", args.DName)
	}

	return cmdArgs
}
