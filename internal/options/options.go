// Package options contains the program options.
package options

// Parameters contains file path options.
type Parameters struct {
	Input   string // ROM file to decode
	Output  string // output directory of the exported records
	Config  string // TOML config file
	Listing string // text listing file, "-" for stdout
}

// Flags contains behavior options.
type Flags struct {
	Format  string // export format
	Workers int    // number of concurrent entry point decoders
	Debug   bool
	Quiet   bool
}

// OutputFlags contains listing formatting options.
type OutputFlags struct {
	NoHexComments bool
	NoOffsets     bool
}

// Program options of the decoder.
type Program struct {
	Parameters
	Flags
	OutputFlags
}
