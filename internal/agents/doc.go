// Package agents holds the registry of supported AI coding agents. Each
// agent pairs a dotted base folder with ordered file-selection rules that
// decide which source files it receives and under what names. The registry
// ships embedded as agents.yaml and is schema-checked when loaded.
package agents
