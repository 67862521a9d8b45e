// Command api runs the bookstore HTTP API.
//
// Configuration comes from the environment, optionally seeded from a .env file in the working
// directory. See the config package for the keys and their defaults.
package main
