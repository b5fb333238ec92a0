// Package app contains the core application logic of the teardown drill: it
// wires the registry, store, notifier, provisioner and destroyer together,
// loads a teardown plan, and replays the lifecycle boundaries the plan
// describes. It is decoupled from any specific entrypoint like a CLI.
package app
