// 包 testfixture：各包测试共用的三县拓扑与教育记录
//
// 布局（单位正方形，自左向右）：
//
//	1001 (州 01) | 1003 (州 01) | 2001 (州 02)
//
// 弧 0 为 1001/1003 公共边，弧 1 为 1003/2001 公共边，弧 2-5 为外边界；唯一的州界是弧 1
package testfixture

const Topology = `{
  "type": "Topology",
  "arcs": [
    [[1,0],[1,1]],
    [[2,0],[2,1]],
    [[1,1],[0,1],[0,0],[1,0]],
    [[1,1],[2,1]],
    [[2,0],[1,0]],
    [[2,1],[3,1],[3,0],[2,0]]
  ],
  "objects": {
    "counties": {
      "type": "GeometryCollection",
      "geometries": [
        {"type": "Polygon", "id": 1001, "arcs": [[0, 2]]},
        {"type": "Polygon", "id": "01003", "arcs": [[-1, -5, 1, -4]]},
        {"type": "Polygon", "id": 2001, "arcs": [[-2, -6]]}
      ]
    },
    "states": {
      "type": "GeometryCollection",
      "geometries": [
        {"type": "Polygon", "id": "01", "arcs": [[2, -5, 1, -4]]},
        {"type": "Polygon", "id": "02", "arcs": [[-2, -6]]}
      ]
    }
  }
}`

// Education：缺 2001 以覆盖缺省分支；1003 重复出现，以最后一条为准
const Education = `[
  {"fips": 1001, "state": "AL", "area_name": "Autauga County", "bachelorsOrHigher": 21.9},
  {"fips": 1003, "state": "AL", "area_name": "Old Baldwin", "bachelorsOrHigher": 5},
  {"fips": 1003, "state": "AL", "area_name": "Baldwin County", "bachelorsOrHigher": 70}
]`

// BorderPath：Topology 对应的州界路径
const BorderPath = "M2,0L2,1"
