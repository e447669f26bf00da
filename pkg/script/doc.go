// Package script runs edit scripts against a feature model.
//
// A script is a YAML document describing feature collections, then an ordered list of edits.
// Edits address features by the aliases declared in the script, and are applied through
// the public mutators of the model: each edit is atomic.
//
// Sample script:
//
//	collections:
//	  - filename: coastlines.gpml
//	    features:
//	      - alias: africa
//	        type: gpml:Coastline
//	        properties:
//	          - name: gpml:reconstructionPlateId
//	            values:
//	              - integer: 701
//	edits:
//	  - op: set
//	    feature: africa
//	    property: gpml:reconstructionPlateId
//	    value:
//	      integer: 709
package script
