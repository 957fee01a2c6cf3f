// Command roomctl runs maintenance tasks against the Reflective Room record
// store: migrating the sheet layout, printing the author leaderboard and
// rendering poster PDFs offline.
package main
