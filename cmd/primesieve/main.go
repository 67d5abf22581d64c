// Command primesieve counts, lists, verifies and exports primes.
package main

func main() {
	execute()
}
