package script

const fixtureScript = `
collections:
  - filename: coastlines.gpml
    features:
      - alias: africa
        type: gpml:Coastline
        properties:
          - name: gml:name
            attributes:
              xml:lang: en
            values:
              - string: Africa
          - name: gpml:reconstructionPlateId
            values:
              - constant:
                  value:
                    integer: 701
                  description: plate id
          - name: gml:validTime
            values:
              - period:
                  begin: "600"
                  end: distant future
          - name: gpml:centerLineOf
            values:
              - lineString:
                  - {lat: 0, lon: 10}
                  - {lat: 5, lon: 15}
      - alias: ridge
        id: GPlates-ridge-1
        type: gpml:MidOceanRidge
        properties:
          - name: gpml:spreadingRate
            values:
              - sampling:
                  samples:
                    - time: "0"
                      value: {double: 2.5}
                    - time: "10"
                      value: {double: 3}
          - name: gml:position
            values:
              - point: {lat: -10, lon: 20}
  - filename: isochrons.gpml
    features:
      - type: gpml:Isochron
edits:
  - op: set
    feature: africa
    property: gml:name
    value: {string: Nubia}
  - op: set
    feature: africa
    property: gpml:reconstructionPlateId
    value: {integer: 709}
  - op: movePoint
    feature: africa
    property: gpml:centerLineOf
    item: 1
    position: {lat: 6, lon: 16}
  - op: appendSample
    feature: ridge
    property: gpml:spreadingRate
    sample:
      time: "20"
      value: {double: 4}
  - op: addFeature
    collection: isochrons.gpml
    newFeature:
      alias: isochron
      type: gpml:Isochron
  - op: renameCollection
    collection: isochrons.gpml
    to: all-isochrons.gpml
  - op: removeFeature
    feature: ridge
`
