// glz - granular compression CLI tool
//
// Usage:
//
//	glz encode [flags] -o OUT FILE...   Compress files into a container
//	glz decode [flags] IN               Decode one entry, a range or every entry
//	glz ls IN                           Print the header and the index
//
// Run "glz <command> -h" for the flags of a command.
package main

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer formats byte counts with thousands separators.
var printer = message.NewPrinter(language.English)

func main() {
	log.SetFlags(0)
	log.SetPrefix("glz: ")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch cmd, args := os.Args[1], os.Args[2:]; cmd {
	case "encode":
		err = cmdEncode(args)
	case "decode":
		err = cmdDecode(args)
	case "ls":
		err = cmdList(args)
	case "help", "-h", "--help":
		printUsage()
		return
	default:
		printUsage()
		err = fmt.Errorf("unknown command: %s", cmd)
	}

	if err != nil {
		log.Fatal(err)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage: glz <command> [flags]

Commands:
  encode   compress files into a GLZ container
  decode   decode entries of a container
  ls       list the header and entries of a container`)
}
