/*
Package easybtc ties together several other common packages and makes it easy to
perform common Bitcoin key operations on the secp256k1 curve.

These operations include:

-- Loading private and public keys from PEM (SEC1, PKCS#8, SubjectPublicKeyInfo) and JWK files

-- Hashing data with Hash256 (double SHA-256) and Hash160 (RIPEMD-160 of SHA-256)

-- Encoding keys as hex, base64, raw bytes, WIF and P2PKH addresses

-- Signing data using the private key and verifying with the public key

-- Searching for vanity addresses that start with a chosen prefix

See the examples for more information.
*/
package easybtc
