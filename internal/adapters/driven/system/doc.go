// Package system implements the operating system ports: running external
// commands, stopping and starting services, suspending processes and
// enumerating processes, services and the foreground window.
//
// Every external command goes through a driven.ProcessManager so the
// platform helpers can be tested without touching the OS. Platform
// differences live in _windows.go / _other.go files.
package system
