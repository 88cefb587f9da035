package drand

import (
	"encoding/hex"
	"fmt"
	"io"
	"sync"

	"github.com/hashicorp/go-multierror"
	json "github.com/nikkolasg/hexjson"
	"github.com/urfave/cli/v2"

	"github.com/drand/drand/v2/common/log"

	"github.com/randa-mu/drand-client-go/chain"
	"github.com/randa-mu/drand-client-go/client"
	"github.com/randa-mu/drand-client-go/crypto"
)

// Automatically set through -ldflags
// Example: go install -ldflags "-X main.buildDate=$(date -u +%d/%m/%Y@%H:%M:%S) -X main.gitCommit=$(git rev-parse HEAD)"
var (
	version   = "0.1.0"
	gitCommit = "none"
	buildDate = "unknown"
)

var SetVersionPrinter sync.Once

var urlFlag = &cli.StringSliceFlag{
	Name:    "url",
	Usage:   "Root URL(s) of the beacon API to fetch randomness from. The first one that yields a working client wins.",
	EnvVars: []string{"DRAND_URL"},
}

var schemeFlag = &cli.StringFlag{
	Name:    "scheme",
	Usage:   "Beacon scheme the chain runs: 'chained' or 'unchained'.",
	Value:   "chained",
	EnvVars: []string{"DRAND_SCHEME"},
}

var roundFlag = &cli.Uint64Flag{
	Name: "round",
	Usage: "Request the public randomness generated at round num. If the beacon does not have the requested value," +
		" it returns an error. If not specified, the latest randomness is returned.",
	EnvVars: []string{"DRAND_ROUND"},
}

var chainHashFlag = &cli.StringFlag{
	Name:    "chain-hash",
	Usage:   "The hash (in hex) of the chain to follow; construction fails when the fetched chain info mismatches it.",
	EnvVars: []string{"DRAND_CHAIN_HASH"},
}

var groupConfFlag = &cli.PathFlag{
	Name: "group-conf",
	Usage: "Path to a chain info trust root (TOML encoded, or the JSON wire format), used instead of fetching the" +
		" chain info from the endpoint.",
	EnvVars: []string{"DRAND_GROUP_CONF"},
}

var hashOnlyFlag = &cli.BoolFlag{
	Name:    "hash",
	Usage:   "Only print the hash of the chain info",
	EnvVars: []string{"DRAND_HASH"},
}

var jsonFlag = &cli.BoolFlag{
	Name:    "json",
	Usage:   "Set the output as json format",
	EnvVars: []string{"DRAND_JSON"},
}

var verboseFlag = &cli.BoolFlag{
	Name:    "verbose",
	Usage:   "If set, verbosity is at the debug level",
	EnvVars: []string{"DRAND_VERBOSE"},
}

var clientFlags = []cli.Flag{urlFlag, schemeFlag, chainHashFlag, groupConfFlag, jsonFlag, verboseFlag}

var appCommands = []*cli.Command{
	{
		Name:  "get",
		Usage: "get allows for public information retrieval from a remote beacon endpoint.\n",
		Subcommands: []*cli.Command{
			{
				Name: "public",
				Usage: "Get the public randomness generated by the beacon and verify it against the " +
					"collective public key found in the chain info.\n",
				Flags:  toArray(append(clientFlags, roundFlag)...),
				Action: getPublicRandomness,
			},
			{
				Name:   "chain-info",
				Usage:  "Get the binding chain information that the endpoint serves randomness for.",
				Flags:  toArray(append(clientFlags, hashOnlyFlag)...),
				Action: getChainInfo,
			},
		},
	},
}

// CLI runs the beacon client app
func CLI() *cli.App {
	app := cli.NewApp()
	app.Name = "drand-client"

	// See https://cli.urfave.org/v2/examples/bash-completions/#enabling for how to turn on.
	app.EnableBashCompletion = true

	SetVersionPrinter.Do(func() {
		cli.VersionPrinter = func(c *cli.Context) {
			fmt.Fprintf(c.App.Writer, "drand-client %s (date %v, commit %v)\n", version, buildDate, gitCommit)
		}
	})

	app.ExitErrHandler = func(context *cli.Context, err error) {
		// override to prevent default behavior of calling OS.exit(1),
		// when tests expect to be able to run multiple commands.
	}
	app.Version = version
	app.Usage = "client for the drand distributed randomness service"
	// we need to copy the underlying commands to avoid races, cli sadly doesn't support concurrent executions well
	appComm := make([]*cli.Command, len(appCommands))
	for i, p := range appCommands {
		if p == nil {
			continue
		}
		v := *p
		appComm[i] = &v
	}
	app.Commands = appComm
	return app
}

func toArray(flags ...cli.Flag) []cli.Flag {
	return flags
}

// buildClient constructs a client from the flags, trying each URL in turn
// and aggregating the failures when none of them works.
func buildClient(c *cli.Context) (*client.Client, error) {
	level := log.WarnLevel
	if c.Bool(verboseFlag.Name) {
		level = log.DebugLevel
	}
	l := log.New(nil, level, c.Bool(jsonFlag.Name))

	var scheme crypto.Scheme
	switch c.String(schemeFlag.Name) {
	case "chained":
		scheme = crypto.NewChainedScheme()
	case "unchained":
		scheme = crypto.NewUnchainedScheme()
	default:
		return nil, fmt.Errorf("unknown scheme %q, expected 'chained' or 'unchained'", c.String(schemeFlag.Name))
	}

	opts := []client.Option{client.WithLogger(l)}

	if groupPath := c.Path(groupConfFlag.Name); groupPath != "" {
		info, err := chain.InfoFromFile(groupPath)
		if err != nil {
			return nil, fmt.Errorf("failed to decode group (%s): %w", groupPath, err)
		}
		opts = append(opts, client.WithChainInfo(info))
	}

	if hexHash := c.String(chainHashFlag.Name); hexHash != "" {
		hash, err := hex.DecodeString(hexHash)
		if err != nil {
			return nil, fmt.Errorf("decoding chain hash: %w", err)
		}
		opts = append(opts, client.WithChainHash(hash))
	}

	urls := c.StringSlice(urlFlag.Name)
	if len(urls) == 0 {
		return nil, fmt.Errorf("specify at least one --%s", urlFlag.Name)
	}

	var errs error
	for _, url := range urls {
		cl, err := client.New(c.Context, url, scheme, opts...)
		if err != nil {
			l.Warnw("", "client", "failed to construct", "url", url, "err", err)
			errs = multierror.Append(errs, err)
			continue
		}
		return cl, nil
	}
	return nil, fmt.Errorf("all URLs failed to be used for creating a client: %w", errs)
}

func getPublicRandomness(c *cli.Context) error {
	cl, err := buildClient(c)
	if err != nil {
		return err
	}
	defer cl.Close()

	var beacon interface {
		GetRound() uint64
		GetRandomness() []byte
	}
	if c.IsSet(roundFlag.Name) {
		beacon, err = cl.Randomness(c.Context, c.Uint64(roundFlag.Name))
	} else {
		beacon, err = cl.LatestRandomness(c.Context)
	}
	if err != nil {
		return err
	}

	if c.Bool(jsonFlag.Name) {
		return printJSON(c.App.Writer, beacon)
	}
	fmt.Fprintf(c.App.Writer, "round %d randomness %s\n", beacon.GetRound(), hex.EncodeToString(beacon.GetRandomness()))
	return nil
}

func getChainInfo(c *cli.Context) error {
	cl, err := buildClient(c)
	if err != nil {
		return err
	}
	defer cl.Close()

	info := cl.Info()
	if c.Bool(hashOnlyFlag.Name) {
		fmt.Fprintln(c.App.Writer, info.HashString())
		return nil
	}
	return info.ToJSON(c.App.Writer)
}

func printJSON(w io.Writer, j interface{}) error {
	buff, err := json.MarshalIndent(j, "", "    ")
	if err != nil {
		return fmt.Errorf("could not JSON marshal: %w", err)
	}
	fmt.Fprintln(w, string(buff))
	return nil
}
