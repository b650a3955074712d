/*
Package transport defines the Transport interface shared by every plugin:
Run, Upload, Download, Create, Read, and the scoped Open/Close pair that
lets an implementation acquire and release session resources.

Three implementations live in subpackages:

  - transport/local — executes on the current machine.
  - transport/sshexec — shells out to ssh/scp per call.
  - transport/sshpersist — one long-lived ssh.Client plus an sftp.Client.

A Transport belongs to exactly one Job. Calls on it are serialized by the
caller; no implementation here makes concurrent use from multiple
goroutines safe.
*/
package transport
