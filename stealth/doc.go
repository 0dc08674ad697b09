/*
Package stealth implements stealth addresses and the prefix filter used to
find payments to them.

A stealth address carries a scan key, one or more spend keys, the number of
spend signatures required and a BitField prefix.  A sender announces a
payment with a null data output holding an ephemeral key and a nonce, chosen
so that the hash of the announcement matches the prefix, followed directly by
the payment output.  A receiver scans each transaction with the prefix and
pairs every matching announcement with the output after it.

Address payloads are parsed with DecodePayload or ParseAddress.  Malformed
payloads are common input, so parsing never panics and reports the first
failure as a *DecodeError carrying an ErrorCode, the field and the offset.
*/
package stealth
