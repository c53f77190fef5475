// Package main provides the entry point for the playcrawl CLI.
//
// playcrawl walks the Google Play catalog and collects one detail record
// per discovered app. Progress is durable: an interrupted crawl resumes
// from where it stopped.
//
// Usage:
//
//	playcrawl crawl
//	playcrawl status
//
// See --help for all available options.
package main

// main is the entry point for playcrawl.
func main() {
	Execute()
}
