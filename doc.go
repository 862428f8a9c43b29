// Package main provides the entry point of crowdlink.
// crowdlink maps Atlassian Crowd authentication events onto local forum
// accounts and mirrors Crowd group memberships onto local groups. It runs as
// a fiber web service the host's handshake layer calls, and offers cobra
// commands to resolve identities and repair links from the shell.
package main
