// Package systems dispatches catalog builds to game-system adapters.
//
// The set of supported systems is closed: each one is a GameSystem value and
// an Adapter implementation in a subpackage (demonlord, symbaroum, pf1).
// Adapters are registered by system and version at startup; the engine
// resolves the adapter for a request through the Registry and never
// inspects host data to pick one.
//
// # Adding a New System
//
//  1. Add a GameSystem value and its name in system.go.
//  2. Create a subpackage implementing Adapter.
//  3. Register it in the HUD app's system registration.
//  4. Add its translation namespace under platform/i18n/catalog/locales.
package systems
