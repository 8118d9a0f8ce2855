package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/IrfanHusain/MassScreener/pkg/screener"
	"github.com/fatih/color"
	"github.com/root4loot/goutils/fileutil"
	"github.com/root4loot/goutils/log"
)

const (
	author  = "@IrfanHusain"
	version = "0.1.0"

	banner = `
  __  __                _____
 |  \/  |              / ____|
 | \  / | __ _ ___ ___| (___   ___ _ __ ___  ___ _ __   ___ _ __
 | |\/| |/ _` + "`" + ` / __/ __|\___ \ / __| '__/ _ \/ _ \ '_ \ / _ \ '__|
 | |  | | (_| \__ \__ \____) | (__| | |  __/  __/ | | |  __/ |
 |_|  |_|\__,_|___/___/_____/ \___|_|  \___|\___|_| |_|\___|_|
`

	usage = `USAGE:
  massscreener -u <urls.txt>

INPUT:
  -u, --urls                     text file with URLs to screenshot (one per line)
`
)

type cli struct {
	urlFile string
}

func main() {
	printBanner()

	cli := &cli{}
	cli.parseFlags()

	urls, err := readURLFile(cli.urlFile)
	if err != nil {
		log.Fatalf("Error reading file: %v", err)
	}

	s := screener.NewScreener()
	if _, err := s.Run(urls); err != nil {
		log.Fatalf("%v", err)
	}
}

func printBanner() {
	color.Cyan(banner)
	fmt.Printf("massscreener %s by %s\n\n", version, author)
}

func (c *cli) parseFlags() {
	flag.StringVar(&c.urlFile, "u", "", "")
	flag.StringVar(&c.urlFile, "urls", "", "")

	flag.Usage = func() {
		fmt.Print(usage)
	}

	flag.Parse()

	if c.urlFile == "" {
		log.Error("No URL file specified")
		fmt.Print(usage)
		os.Exit(2)
	}
}

// readURLFile reads the URL list, one per line, skipping blank lines and
// preserving input order.
func readURLFile(path string) ([]string, error) {
	lines, err := fileutil.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var urls []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			urls = append(urls, line)
		}
	}

	return urls, nil
}
