// main.go - interactive console for exercising a texcache.Cache
//
// (c) 2024 - 2026 Zayn Otley
// https://github.com/IntuitionAmiga/IntuitionEngine
// License: GPLv3 or later

package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/otley-labs/psptexcache"
	"github.com/otley-labs/psptexcache/gputexhost/ebitendriver"
	"github.com/otley-labs/psptexcache/texdebug"
	"github.com/otley-labs/psptexcache/texscale"
	"github.com/otley-labs/psptexcache/texscript"
)

func boilerPlate() {
	fmt.Println("texcachedemo - interactive psptexcache console")
	fmt.Println("(c) 2024 - 2026 Zayn Otley")
	fmt.Println("https://github.com/IntuitionAmiga/IntuitionEngine")
	fmt.Println("License: GPLv3 or later")
}

func main() {
	var (
		backend     string
		vramSize    int
		assetDir    string
		scriptFile  string
		showFeat    bool
	)

	flagSet := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.StringVar(&backend, "backend", "ebiten", "host driver backend: ebiten or vulkan")
	flagSet.IntVar(&vramSize, "vram", 4<<20, "simulated VRAM size in bytes")
	flagSet.StringVar(&assetDir, "assets", "./assets", "directory for raw texture/CLUT dumps")
	flagSet.StringVar(&scriptFile, "script", "", "run a Lua scenario script and exit")
	flagSet.BoolVar(&showFeat, "features", false, "print compiled features and exit")

	flagSet.Usage = func() {
		flagSet.SetOutput(os.Stdout)
		fmt.Println("Usage: texcachedemo [--backend ebiten|vulkan] [--vram N] [--assets dir] [--script file.lua] [--features]")
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	boilerPlate()

	if showFeat {
		printFeatures()
		return
	}

	driver := newDriver(backend)
	mem := newFlatMemory(vramSize)
	fbs := newMemRegistry()
	stats := texcache.NewStats()

	cfg := texcache.DefaultConfig()
	cache := texcache.NewCache(cfg, mem, driver, fbs, stats)
	cache.SetScaler(texscale.Scale)

	assets := texcache.NewAssetStore(assetDir)

	if scriptFile != "" {
		data, err := os.ReadFile(scriptFile)
		if err != nil {
			fmt.Printf("Error reading script: %v\n", err)
			os.Exit(1)
		}
		runner := texscript.New(cache)
		defer runner.Close()
		if err := runner.Run(string(data)); err != nil {
			fmt.Printf("Script error: %v\n", err)
			os.Exit(1)
		}
		printStats(stats)
		return
	}

	runConsole(cache, stats, driver, mem, assets)
}

func printFeatures() {
	fmt.Println("Compiled features:")
	features := texcache.Features()
	if len(features) == 0 {
		fmt.Println("  (none)")
		return
	}
	for _, f := range features {
		fmt.Printf("  %s\n", f)
	}
}

func newDriver(name string) texcache.HostDriver {
	switch name {
	case "vulkan":
		fmt.Println("vulkan backend requested; falling back to software rasterization (no device handle supplied)")
		return ebitendriver.New()
	default:
		return ebitendriver.New()
	}
}

// runConsole drives a tiny step-frame / dump-stats / invalidate-region REPL.
// On a terminal it switches to raw mode and readLine echoes keystrokes
// itself; every command, step included, is read as a line ended by Enter.
func runConsole(cache *texcache.Cache, stats *texcache.Stats, driver texcache.HostDriver, mem *flatMemory, assets *texcache.AssetStore) {
	fmt.Println("\nCommands: step [n] | stats | invalidate <addr> <size> | invalidateall | clear | load <name> <addr> | quit")

	isTTY := term.IsTerminal(int(os.Stdin.Fd()))
	var restore func()
	if isTTY {
		oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
		if err == nil {
			restore = func() { term.Restore(int(os.Stdin.Fd()), oldState) }
			defer restore()
		}
	}

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("> ")
		line, err := readLine(reader, isTTY)
		if err != nil {
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "quit", "exit":
			return
		case "step":
			n := 1
			if len(fields) > 1 {
				n, _ = strconv.Atoi(fields[1])
			}
			for i := 0; i < n; i++ {
				cache.StartFrame()
			}
			fmt.Printf("stepped %d frame(s)\n", n)
		case "stats":
			printStats(stats)
		case "invalidate":
			if len(fields) < 3 {
				fmt.Println("usage: invalidate <addr> <size>")
				continue
			}
			addr := parseUint32(fields[1])
			size, _ := strconv.Atoi(fields[2])
			cache.Invalidate(addr, size, texcache.InvalidateNormal)
		case "invalidateall":
			cache.InvalidateAll()
		case "clear":
			cache.ClearNextFrame()
			fmt.Println("queued a full clear for the next StartFrame")
		case "load":
			if len(fields) < 3 {
				fmt.Println("usage: load <name> <addr>")
				continue
			}
			data, err := assets.LoadAsset(fields[1])
			if err != nil {
				fmt.Printf("load error: %v\n", err)
				continue
			}
			addr := parseUint32(fields[2])
			copy(mem.buf[addr:], data)
			fmt.Printf("loaded %d bytes at %#x\n", len(data), addr)
		default:
			fmt.Printf("unknown command: %s\n", fields[0])
		}
	}
}

func readLine(reader *bufio.Reader, isTTY bool) (string, error) {
	if !isTTY {
		return reader.ReadString('\n')
	}
	var sb strings.Builder
	for {
		b, err := reader.ReadByte()
		if err != nil {
			return sb.String(), err
		}
		if b == '\r' || b == '\n' {
			fmt.Print("\r\n")
			return sb.String(), nil
		}
		if b == 3 { // Ctrl-C
			return "", io.EOF
		}
		sb.WriteByte(b)
		fmt.Printf("%c", b)
	}
}

func parseUint32(s string) uint32 {
	v, _ := strconv.ParseUint(s, 0, 32)
	return uint32(v)
}

func printStats(stats *texcache.Stats) {
	snap := stats.Snapshot()
	fmt.Printf("flips=%d invalidations=%d decoded=%d\n", snap.NumFlips, snap.NumTextureInvalidations, snap.NumTexturesDecoded)
}

var _ = texdebug.Export // referenced so --features reflects the clipboard exporter even if no command path calls it yet
