// Package ui contains the Bubble Tea program that powers the agent console.
// The package is structured so the Model type focuses on message orchestration,
// while dedicated helpers own navigation, rendering, and backend sync.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages.
//   - Update routes each tea.Msg through a typed handler registry so every
//     message kind is handled by a focused function (key presses, window
//     resizes, backend events, route changes). Messages without a handler are
//     relayed to the tabbed shell, which passes them on to every panel.
//   - The shell (internal/ui/tabs) keeps one panel visible at a time; hidden
//     panels stay resident and keep receiving relayed messages, so their state
//     is warm when they are selected again.
//
// State ownership:
//   - The deployment dashboard panel (internal/ui/dashboard) owns its table
//     rows, cursor, and filter state.
//   - The deployment store is provided by internal/state and kept in sync by
//     the dispatcher so the dashboard always sees current registry data.
//   - Command execution runs through the internal/ui/command bus, which wraps
//     actions in traced tea.Cmd values.
//
// Backend interactions:
//   - A backend.Watcher streams registry snapshots; Update waits for those
//     events and hands them to applyBackendEvent, which refreshes the
//     deployment store and relays the fresh rows to all panels.
//   - Route changes arrive as navigateMsg values, emitted either by the
//     --page startup override or by the not-found view's home navigation.
//
// This separation keeps Model.Update compact and makes it easier to test
// independent concerns (tab switching, filtering, backend sync) without
// needing to reason about the entire TUI at once.
package ui
