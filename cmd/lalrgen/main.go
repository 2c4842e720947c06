/*
Lalrgen compiles a grammar into an LALR(1) parser and either reports its
tables or drives it interactively against lines of terminal names typed at
a prompt.

Usage:

	lalrgen [flags]

The flags are:

	-v, --version
		Give the current version of the tool and then exit.

	-g, --grammar FILE
		Read the grammar from FILE, in the line-oriented "Head -> Sym1
		Sym2" form described by internal/textgrammar. Defaults to
		"grammar.txt" in the current working directory.

	-c, --config FILE
		Read defaults (grammar path, cache file path) from a TOML config
		file before flags are applied on top of them.

	-t, --dump-tables
		Print the assembled ACTION/GOTO tables and exit instead of
		starting the interactive prompt.

	--cache FILE
		Path to a sqlite table cache. When set, a compiled grammar's
		tables are looked up by grammar hash before rebuilding, and
		stored after a successful build.

	-i, --interactive
		Start a readline-backed prompt accepting one space-separated
		line of terminal names per parse attempt, terminated by "EOF".

Once started in interactive mode, each line is parsed against the compiled
grammar and the outcome (accept, or the single reported error) is printed.
Type an empty line or press Ctrl-D to exit.
*/
package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/chzyer/readline"
	"github.com/spf13/pflag"

	"github.com/MrTamalampudi/manodae/internal/ictiobus"
	"github.com/MrTamalampudi/manodae/internal/ictiobus/tabledump"
	"github.com/MrTamalampudi/manodae/internal/persist"
	"github.com/MrTamalampudi/manodae/internal/textgrammar"
	"github.com/MrTamalampudi/manodae/internal/version"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitLoadError indicates a problem reading or compiling the grammar.
	ExitLoadError

	// ExitInteractiveError indicates a problem running the interactive
	// prompt.
	ExitInteractiveError
)

// config holds the TOML-file-sourced defaults; flags, where set, take
// precedence over these.
type config struct {
	Grammar string `toml:"grammar"`
	Cache   string `toml:"cache"`
}

var (
	returnCode  int     = ExitSuccess
	flagVersion *bool   = pflag.BoolP("version", "v", false, "Gives the version info")
	grammarFile *string = pflag.StringP("grammar", "g", "grammar.txt", "The grammar file to compile")
	configFile  *string = pflag.StringP("config", "c", "", "A TOML config file supplying defaults")
	dumpTables  *bool   = pflag.BoolP("dump-tables", "t", false, "Print ACTION/GOTO tables and exit")
	cachePath   *string = pflag.String("cache", "", "Path to a sqlite table cache")
	interactive *bool   = pflag.BoolP("interactive", "i", false, "Start an interactive parse prompt")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occured: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	var cfg config
	if *configFile != "" {
		if _, err := toml.DecodeFile(*configFile, &cfg); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: read config: %s\n", err.Error())
			returnCode = ExitLoadError
			return
		}
		if !pflag.Lookup("grammar").Changed && cfg.Grammar != "" {
			*grammarFile = cfg.Grammar
		}
		if !pflag.Lookup("cache").Changed && cfg.Cache != "" {
			*cachePath = cfg.Cache
		}
	}

	f, err := os.Open(*grammarFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitLoadError
		return
	}
	g, err := textgrammar.Load(f)
	f.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitLoadError
		return
	}

	var cache *persist.Cache
	var cachedSnap *persist.TableSnapshot
	if *cachePath != "" {
		cache, err = persist.OpenCache(*cachePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitLoadError
			return
		}
		defer cache.Close()

		hash := persist.HashGrammar(g)
		if snap, hit, err := cache.Lookup(hash); err == nil && hit {
			fmt.Printf("table cache hit for grammar %s (%d states cached)\n", hash[:12], snap.StateCount)
			cachedSnap = snap
		}
	}

	// --dump-tables needs every state's full item set, which a cache
	// snapshot doesn't carry (only its ACTION/GOTO entries do); fall back to
	// a full Compile in that one case so the dump stays accurate.
	var parser *ictiobus.Parser
	if cachedSnap != nil && !*dumpTables {
		a, t := cachedSnap.Rebuild(g)
		parser = ictiobus.FromParts(g, a, t)
	} else {
		parser = ictiobus.Compile(g)
		if cache != nil {
			snap := persist.Snapshot(g, parser.Automaton, parser.Table)
			if err := cache.Store(snap); err != nil {
				fmt.Fprintf(os.Stderr, "WARNING: could not store table cache entry: %s\n", err.Error())
			}
		}
	}

	if len(parser.Conflicts()) > 0 {
		fmt.Fprint(os.Stderr, tabledump.Conflicts(g, parser.Table))
	}

	if *dumpTables {
		fmt.Println(tabledump.States(g, parser.Automaton))
		fmt.Println(tabledump.ActionGoto(g, parser.Automaton, parser.Table))
		return
	}

	if *interactive {
		if err := runInteractive(parser); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitInteractiveError
		}
		return
	}

	conflictCount := len(parser.Conflicts())
	if cachedSnap != nil && !*dumpTables {
		conflictCount = cachedSnap.Conflicts
	}
	fmt.Printf("compiled grammar: %d states, %d conflicts\n", parser.Automaton.Len(), conflictCount)
}

func runInteractive(p *ictiobus.Parser) error {
	rl, err := readline.NewEx(&readline.Config{Prompt: "lalr> "})
	if err != nil {
		return fmt.Errorf("create readline config: %w", err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			return nil
		}
		if line == "" {
			return nil
		}

		stream := textgrammar.TokenizeLine(line)
		result := p.Parse(stream, nil)
		if result.Accepted {
			fmt.Println("accept")
			continue
		}
		for _, e := range result.Errors {
			fmt.Println(e.Error())
		}
	}
}
