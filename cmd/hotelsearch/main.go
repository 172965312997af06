// Command hotelsearch serves hotel search over Elasticsearch and keeps the
// index in step with the hotel record database.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
