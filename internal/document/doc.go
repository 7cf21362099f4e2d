// Package document loads query definitions from files.
//
// A document is a list of named queries written in YAML, JSON or CUE:
//
//	queries:
//	  - name: close-session
//	    kind: delete
//	    table: sessions
//	    where:
//	      - {column: id, op: eq, value: 42}
//	      - or:
//	          - {column: state, op: in, value: [open, idle]}
//	          - {column: expires_at, op: is_null}
//	    limit: 1
//	  - name: rename
//	    kind: update
//	    table: users
//	    values:
//	      name: Ada
//	      age: 38
//
// The key order of "values" is significant: it is the order of the SET
// clause, and therefore part of the query's identity. YAML and JSON are
// decoded with order preserved; CUE documents are evaluated and exported
// in declaration order.
//
// Unknown fields are rejected so that typos ("valeus:") fail loudly.
package document
