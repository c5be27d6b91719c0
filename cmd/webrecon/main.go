// Package main provides the entry point for the webrecon CLI.
//
// webrecon gathers page metadata, phone numbers, subdomains and reachable
// paths for a target URL and prints them as one report.
//
// Usage:
//
//	webrecon scan https://example.com
//	webrecon scan --markdown -o report.md https://example.com
package main

func main() {
	Execute()
}
