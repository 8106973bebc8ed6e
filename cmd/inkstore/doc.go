// Command inkstore is the store's CLI.
//
//	inkstore run             # start the HTTP server
//	inkstore migrate         # run pending migrations
//	inkstore migrate:rollback
//	inkstore migrate:status
//	inkstore seed            # seed the admin account and demo catalog
//	inkstore route:list      # print the API route table
//	inkstore queue:work      # run queue workers standalone
//	inkstore schedule:run    # run the scheduler standalone
//
// The server command embeds the workers and scheduler; the standalone
// worker commands exist for running them as separate processes.
package main
