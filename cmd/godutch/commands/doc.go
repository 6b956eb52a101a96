// Package commands defines the godutch CLI.
//
// Commands
//
//   - register                 Create an identity for this device and password
//   - login                    Check the credentials and print your id
//   - group create             Create a group and print its code
//   - group join CODE          Join a group by code
//   - group list               List the groups you belong to
//   - group show CODE          Show a group's members
//   - group delete CODE        Delete a group you created
//   - expense add CODE AMOUNT  Record an expense you paid
//   - expense list CODE        List a group's expenses
//   - balances CODE            Show balances and suggested transfers
//
// Every command authenticates with --password and the device fingerprint
// against the local store configured by --config or GODUTCH_* variables.
package commands
