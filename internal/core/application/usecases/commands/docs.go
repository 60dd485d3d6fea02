// Package commands contains the checkout operations that change stored state:
// starting a checkout, staging the cart and the address, confirming the order
// and repairing the order index.
//
// Every command is a value built by its NewX constructor (guarded by
// guard.ConstructorGuard) and executed by a matching handler.
package commands
