package input

import (
	"context"
	"fmt"
	"os"
	"slices"

	"git.fiblab.net/general/common/v2/geometry"
	"git.fiblab.net/general/common/v2/mongoutil"
	"github.com/tsinghua-fib-lab/aim-sim-oss/entity"
	"github.com/tsinghua-fib-lab/aim-sim-oss/entity/vehicle"
	"github.com/tsinghua-fib-lab/aim-sim-oss/utils/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"gopkg.in/yaml.v2"
)

// VehicleRecord 车辆生成脚本中的一条记录
// 功能：指定某一步生成的一辆车的初始状态，文件（YAML）与MongoDB使用相同的字段名
type VehicleRecord struct {
	Step      int32   `yaml:"step" bson:"step"`           // 生成该车辆的步数
	Direction string  `yaml:"direction" bson:"direction"` // 行驶方向 up/down/left/right
	Turn      string  `yaml:"turn" bson:"turn"`           // 转向意图 left/straight/right
	Lane      string  `yaml:"lane" bson:"lane"`           // 车道 left/middle/right
	X         float64 `yaml:"x" bson:"x"`
	Y         float64 `yaml:"y" bson:"y"`
	V         float64 `yaml:"v" bson:"v"`
	A         float64 `yaml:"a" bson:"a"`
	Size      float64 `yaml:"size,omitempty" bson:"size,omitempty"` // 车长，0表示使用缺省值
}

// Spawn 转换为车辆生成参数
func (r VehicleRecord) Spawn() (vehicle.Spawn, error) {
	d, err := entity.ParseMovementDirection(r.Direction)
	if err != nil {
		return vehicle.Spawn{}, err
	}
	t, err := entity.ParseTurnDirection(r.Turn)
	if err != nil {
		return vehicle.Spawn{}, err
	}
	l, err := entity.ParseLane(r.Lane)
	if err != nil {
		return vehicle.Spawn{}, err
	}
	if r.V < 0 {
		return vehicle.Spawn{}, fmt.Errorf("negative velocity %v", r.V)
	}
	return vehicle.Spawn{
		Direction: d,
		Turn:      t,
		Lane:      l,
		Position:  geometry.Point{X: r.X, Y: r.Y},
		V:         r.V,
		A:         r.A,
		Size:      r.Size,
	}, nil
}

// ScriptedSpawn 脚本指定的车辆生成
type ScriptedSpawn struct {
	Step  int32
	Spawn vehicle.Spawn
}

// Input 输入数据
// 功能：存储仿真所需的所有输入数据
type Input struct {
	Spawns []ScriptedSpawn // 按步数升序
}

// Init 下载数据
// 功能：根据配置加载车辆生成脚本
// 参数：ctx-上下文，config-配置对象
// 返回：加载完成的输入数据，未配置脚本时返回空输入
// 算法说明：
// 1. 配置了文件时从YAML文件读取，否则从MongoDB读取整个集合
// 2. 逐条转换为生成参数，非法记录报错
// 3. 按步数稳定排序
func Init(ctx context.Context, config config.Config) (*Input, error) {
	res := &Input{Spawns: make([]ScriptedSpawn, 0)}
	path := config.Input.Vehicles
	if path == nil || path.Empty() {
		log.Info("no vehicle script, use random spawning only")
		return res, nil
	}

	var records []VehicleRecord
	var err error
	if path.File != "" {
		records, err = LoadFile(path.File)
	} else {
		if config.Input.URI == "" {
			return nil, fmt.Errorf("input: vehicles from %s.%s but no mongo uri", path.DB, path.Col)
		}
		client := mongoutil.NewClient(config.Input.URI)
		defer client.Disconnect(context.Background())
		records, err = LoadMongo(ctx, client, *path)
	}
	if err != nil {
		return nil, err
	}

	for i, r := range records {
		s, err := r.Spawn()
		if err != nil {
			return nil, fmt.Errorf("input: vehicle record %d: %w", i, err)
		}
		res.Spawns = append(res.Spawns, ScriptedSpawn{Step: r.Step, Spawn: s})
	}
	slices.SortStableFunc(res.Spawns, func(a, b ScriptedSpawn) int { return int(a.Step - b.Step) })
	log.Infof("load %d scripted vehicles", len(res.Spawns))
	return res, nil
}

// LoadFile 从YAML文件读取车辆生成脚本
func LoadFile(file string) ([]VehicleRecord, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("input: %w", err)
	}
	var records []VehicleRecord
	if err := yaml.UnmarshalStrict(data, &records); err != nil {
		return nil, fmt.Errorf("input: parse %s: %w", file, err)
	}
	return records, nil
}

// LoadMongo 从MongoDB集合读取车辆生成脚本
func LoadMongo(ctx context.Context, client *mongo.Client, path config.InputPath) ([]VehicleRecord, error) {
	coll := mongoutil.GetMongoColl(client, path)
	log.Infof("start fetching from %s.%s", path.DB, path.Col)
	cursor, err := coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("input: find %s.%s: %w", path.DB, path.Col, err)
	}
	var records []VehicleRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("input: decode %s.%s: %w", path.DB, path.Col, err)
	}
	log.Infof("finish fetching from %s.%s", path.DB, path.Col)
	return records, nil
}
