// Package oteladapters provides OpenTelemetry implementations of the rulestore observability interfaces.
//
// Wire them into the rule engine with sqlengine.WithContextualLogger, sqlengine.WithMetrics and
// sqlengine.WithTracing, or into query handlers through the observable wrapper.
package oteladapters
