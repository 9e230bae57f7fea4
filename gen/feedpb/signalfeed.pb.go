// Code generated by protoc-gen-go. DO NOT EDIT.
// versions:
// 	protoc-gen-go v1.36.10
// 	protoc        (unknown)
// source: signalfeed.proto

package feedpb

import (
	protoreflect "google.golang.org/protobuf/reflect/protoreflect"
	protoimpl "google.golang.org/protobuf/runtime/protoimpl"
	reflect "reflect"
	sync "sync"
	unsafe "unsafe"
)

const (
	// Verify that this generated code is sufficiently up-to-date.
	_ = protoimpl.EnforceVersion(20 - protoimpl.MinVersion)
	// Verify that runtime/protoimpl is sufficiently up-to-date.
	_ = protoimpl.EnforceVersion(protoimpl.MaxVersion - 20)
)

type CycleInputRequest struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	Instrument    string                 `protobuf:"bytes,1,opt,name=instrument,proto3" json:"instrument,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *CycleInputRequest) Reset() {
	*x = CycleInputRequest{}
	mi := &file_signalfeed_proto_msgTypes[0]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *CycleInputRequest) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*CycleInputRequest) ProtoMessage() {}

func (x *CycleInputRequest) ProtoReflect() protoreflect.Message {
	mi := &file_signalfeed_proto_msgTypes[0]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use CycleInputRequest.ProtoReflect.Descriptor instead.
func (*CycleInputRequest) Descriptor() ([]byte, []int) {
	return file_signalfeed_proto_rawDescGZIP(), []int{0}
}

func (x *CycleInputRequest) GetInstrument() string {
	if x != nil {
		return x.Instrument
	}
	return ""
}

type SignalSnapshot struct {
	state               protoimpl.MessageState `protogen:"open.v1"`
	FusionStrength      float64                `protobuf:"fixed64,1,opt,name=fusion_strength,json=fusionStrength,proto3" json:"fusion_strength,omitempty"`
	ReflectiveCoherence float64                `protobuf:"fixed64,2,opt,name=reflective_coherence,json=reflectiveCoherence,proto3" json:"reflective_coherence,omitempty"`
	EnergyGradient      float64                `protobuf:"fixed64,3,opt,name=energy_gradient,json=energyGradient,proto3" json:"energy_gradient,omitempty"`
	TimestampUnixNano   int64                  `protobuf:"varint,4,opt,name=timestamp_unix_nano,json=timestampUnixNano,proto3" json:"timestamp_unix_nano,omitempty"`
	unknownFields       protoimpl.UnknownFields
	sizeCache           protoimpl.SizeCache
}

func (x *SignalSnapshot) Reset() {
	*x = SignalSnapshot{}
	mi := &file_signalfeed_proto_msgTypes[1]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *SignalSnapshot) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*SignalSnapshot) ProtoMessage() {}

func (x *SignalSnapshot) ProtoReflect() protoreflect.Message {
	mi := &file_signalfeed_proto_msgTypes[1]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use SignalSnapshot.ProtoReflect.Descriptor instead.
func (*SignalSnapshot) Descriptor() ([]byte, []int) {
	return file_signalfeed_proto_rawDescGZIP(), []int{1}
}

func (x *SignalSnapshot) GetFusionStrength() float64 {
	if x != nil {
		return x.FusionStrength
	}
	return 0
}

func (x *SignalSnapshot) GetReflectiveCoherence() float64 {
	if x != nil {
		return x.ReflectiveCoherence
	}
	return 0
}

func (x *SignalSnapshot) GetEnergyGradient() float64 {
	if x != nil {
		return x.EnergyGradient
	}
	return 0
}

func (x *SignalSnapshot) GetTimestampUnixNano() int64 {
	if x != nil {
		return x.TimestampUnixNano
	}
	return 0
}

type PendingDecision struct {
	state               protoimpl.MessageState `protogen:"open.v1"`
	Instrument          string                 `protobuf:"bytes,1,opt,name=instrument,proto3" json:"instrument,omitempty"`
	Decision            string                 `protobuf:"bytes,2,opt,name=decision,proto3" json:"decision,omitempty"` // BUY | SELL | WAIT
	ConfidenceFusion    float64                `protobuf:"fixed64,3,opt,name=confidence_fusion,json=confidenceFusion,proto3" json:"confidence_fusion,omitempty"`
	ReflectiveResonance float64                `protobuf:"fixed64,4,opt,name=reflective_resonance,json=reflectiveResonance,proto3" json:"reflective_resonance,omitempty"`
	BiasDelta           float64                `protobuf:"fixed64,5,opt,name=bias_delta,json=biasDelta,proto3" json:"bias_delta,omitempty"`
	DeviationVariance   float64                `protobuf:"fixed64,6,opt,name=deviation_variance,json=deviationVariance,proto3" json:"deviation_variance,omitempty"`
	unknownFields       protoimpl.UnknownFields
	sizeCache           protoimpl.SizeCache
}

func (x *PendingDecision) Reset() {
	*x = PendingDecision{}
	mi := &file_signalfeed_proto_msgTypes[2]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *PendingDecision) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*PendingDecision) ProtoMessage() {}

func (x *PendingDecision) ProtoReflect() protoreflect.Message {
	mi := &file_signalfeed_proto_msgTypes[2]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use PendingDecision.ProtoReflect.Descriptor instead.
func (*PendingDecision) Descriptor() ([]byte, []int) {
	return file_signalfeed_proto_rawDescGZIP(), []int{2}
}

func (x *PendingDecision) GetInstrument() string {
	if x != nil {
		return x.Instrument
	}
	return ""
}

func (x *PendingDecision) GetDecision() string {
	if x != nil {
		return x.Decision
	}
	return ""
}

func (x *PendingDecision) GetConfidenceFusion() float64 {
	if x != nil {
		return x.ConfidenceFusion
	}
	return 0
}

func (x *PendingDecision) GetReflectiveResonance() float64 {
	if x != nil {
		return x.ReflectiveResonance
	}
	return 0
}

func (x *PendingDecision) GetBiasDelta() float64 {
	if x != nil {
		return x.BiasDelta
	}
	return 0
}

func (x *PendingDecision) GetDeviationVariance() float64 {
	if x != nil {
		return x.DeviationVariance
	}
	return 0
}

type CycleInputResponse struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	Snapshot      *SignalSnapshot        `protobuf:"bytes,1,opt,name=snapshot,proto3" json:"snapshot,omitempty"`
	Decisions     []*PendingDecision     `protobuf:"bytes,2,rep,name=decisions,proto3" json:"decisions,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *CycleInputResponse) Reset() {
	*x = CycleInputResponse{}
	mi := &file_signalfeed_proto_msgTypes[3]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *CycleInputResponse) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*CycleInputResponse) ProtoMessage() {}

func (x *CycleInputResponse) ProtoReflect() protoreflect.Message {
	mi := &file_signalfeed_proto_msgTypes[3]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use CycleInputResponse.ProtoReflect.Descriptor instead.
func (*CycleInputResponse) Descriptor() ([]byte, []int) {
	return file_signalfeed_proto_rawDescGZIP(), []int{3}
}

func (x *CycleInputResponse) GetSnapshot() *SignalSnapshot {
	if x != nil {
		return x.Snapshot
	}
	return nil
}

func (x *CycleInputResponse) GetDecisions() []*PendingDecision {
	if x != nil {
		return x.Decisions
	}
	return nil
}

type ListInstrumentsRequest struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *ListInstrumentsRequest) Reset() {
	*x = ListInstrumentsRequest{}
	mi := &file_signalfeed_proto_msgTypes[4]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *ListInstrumentsRequest) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*ListInstrumentsRequest) ProtoMessage() {}

func (x *ListInstrumentsRequest) ProtoReflect() protoreflect.Message {
	mi := &file_signalfeed_proto_msgTypes[4]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use ListInstrumentsRequest.ProtoReflect.Descriptor instead.
func (*ListInstrumentsRequest) Descriptor() ([]byte, []int) {
	return file_signalfeed_proto_rawDescGZIP(), []int{4}
}

type ListInstrumentsResponse struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	Instruments   []string               `protobuf:"bytes,1,rep,name=instruments,proto3" json:"instruments,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *ListInstrumentsResponse) Reset() {
	*x = ListInstrumentsResponse{}
	mi := &file_signalfeed_proto_msgTypes[5]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *ListInstrumentsResponse) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*ListInstrumentsResponse) ProtoMessage() {}

func (x *ListInstrumentsResponse) ProtoReflect() protoreflect.Message {
	mi := &file_signalfeed_proto_msgTypes[5]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use ListInstrumentsResponse.ProtoReflect.Descriptor instead.
func (*ListInstrumentsResponse) Descriptor() ([]byte, []int) {
	return file_signalfeed_proto_rawDescGZIP(), []int{5}
}

func (x *ListInstrumentsResponse) GetInstruments() []string {
	if x != nil {
		return x.Instruments
	}
	return nil
}

var File_signalfeed_proto protoreflect.FileDescriptor

const file_signalfeed_proto_rawDesc = "" +
	"\n" +
	"\x10signalfeed.proto\x12\n" +
	"signalfeed\"3\n" +
	"\x11CycleInputRequest\x12\x1e\n" +
	"\n" +
	"instrument\x18\x01 \x01(\tR\n" +
	"instrument\"\xc5\x01\n" +
	"\x0eSignalSnapshot\x12'\n" +
	"\x0ffusion_strength\x18\x01 \x01(\x01R\x0efusionStrength\x121\n" +
	"\x14reflective_coherence\x18\x02 \x01(\x01R\x13reflectiveCoherence\x12'\n" +
	"\x0fenergy_gradient\x18\x03 \x01(\x01R\x0eenergyGradient\x12.\n" +
	"\x13timestamp_unix_nano\x18\x04 \x01(\x03R\x11timestampUnixNano\"\xfb\x01\n" +
	"\x0fPendingDecision\x12\x1e\n" +
	"\n" +
	"instrument\x18\x01 \x01(\tR\n" +
	"instrument\x12\x1a\n" +
	"\bdecision\x18\x02 \x01(\tR\bdecision\x12+\n" +
	"\x11confidence_fusion\x18\x03 \x01(\x01R\x10confidenceFusion\x121\n" +
	"\x14reflective_resonance\x18\x04 \x01(\x01R\x13reflectiveResonance\x12\x1d\n" +
	"\n" +
	"bias_delta\x18\x05 \x01(\x01R\tbiasDelta\x12-\n" +
	"\x12deviation_variance\x18\x06 \x01(\x01R\x11deviationVariance\"\x87\x01\n" +
	"\x12CycleInputResponse\x126\n" +
	"\bsnapshot\x18\x01 \x01(\v2\x1a.signalfeed.SignalSnapshotR\bsnapshot\x129\n" +
	"\tdecisions\x18\x02 \x03(\v2\x1b.signalfeed.PendingDecisionR\tdecisions\"\x18\n" +
	"\x16ListInstrumentsRequest\";\n" +
	"\x17ListInstrumentsResponse\x12 \n" +
	"\vinstruments\x18\x01 \x03(\tR\vinstruments2\xb8\x01\n" +
	"\n" +
	"SignalFeed\x12N\n" +
	"\rGetCycleInput\x12\x1d.signalfeed.CycleInputRequest\x1a\x1e.signalfeed.CycleInputResponse\x12Z\n" +
	"\x0fListInstruments\x12\".signalfeed.ListInstrumentsRequest\x1a#.signalfeed.ListInstrumentsResponseB9Z7github.com/danielpatrickdp/reflex-controller/gen/feedpbb\x06proto3"

var (
	file_signalfeed_proto_rawDescOnce sync.Once
	file_signalfeed_proto_rawDescData []byte
)

func file_signalfeed_proto_rawDescGZIP() []byte {
	file_signalfeed_proto_rawDescOnce.Do(func() {
		file_signalfeed_proto_rawDescData = protoimpl.X.CompressGZIP(unsafe.Slice(unsafe.StringData(file_signalfeed_proto_rawDesc), len(file_signalfeed_proto_rawDesc)))
	})
	return file_signalfeed_proto_rawDescData
}

var file_signalfeed_proto_msgTypes = make([]protoimpl.MessageInfo, 6)
var file_signalfeed_proto_goTypes = []any{
	(*CycleInputRequest)(nil),       // 0: signalfeed.CycleInputRequest
	(*SignalSnapshot)(nil),          // 1: signalfeed.SignalSnapshot
	(*PendingDecision)(nil),         // 2: signalfeed.PendingDecision
	(*CycleInputResponse)(nil),      // 3: signalfeed.CycleInputResponse
	(*ListInstrumentsRequest)(nil),  // 4: signalfeed.ListInstrumentsRequest
	(*ListInstrumentsResponse)(nil), // 5: signalfeed.ListInstrumentsResponse
}
var file_signalfeed_proto_depIdxs = []int32{
	1, // 0: signalfeed.CycleInputResponse.snapshot:type_name -> signalfeed.SignalSnapshot
	2, // 1: signalfeed.CycleInputResponse.decisions:type_name -> signalfeed.PendingDecision
	0, // 2: signalfeed.SignalFeed.GetCycleInput:input_type -> signalfeed.CycleInputRequest
	4, // 3: signalfeed.SignalFeed.ListInstruments:input_type -> signalfeed.ListInstrumentsRequest
	3, // 4: signalfeed.SignalFeed.GetCycleInput:output_type -> signalfeed.CycleInputResponse
	5, // 5: signalfeed.SignalFeed.ListInstruments:output_type -> signalfeed.ListInstrumentsResponse
	4, // [4:6] is the sub-list for method output_type
	2, // [2:4] is the sub-list for method input_type
	2, // [2:2] is the sub-list for extension type_name
	2, // [2:2] is the sub-list for extension extendee
	0, // [0:2] is the sub-list for field type_name
}

func init() { file_signalfeed_proto_init() }
func file_signalfeed_proto_init() {
	if File_signalfeed_proto != nil {
		return
	}
	type x struct{}
	out := protoimpl.TypeBuilder{
		File: protoimpl.DescBuilder{
			GoPackagePath: reflect.TypeOf(x{}).PkgPath(),
			RawDescriptor: unsafe.Slice(unsafe.StringData(file_signalfeed_proto_rawDesc), len(file_signalfeed_proto_rawDesc)),
			NumEnums:      0,
			NumMessages:   6,
			NumExtensions: 0,
			NumServices:   1,
		},
		GoTypes:           file_signalfeed_proto_goTypes,
		DependencyIndexes: file_signalfeed_proto_depIdxs,
		MessageInfos:      file_signalfeed_proto_msgTypes,
	}.Build()
	File_signalfeed_proto = out.File
	file_signalfeed_proto_goTypes = nil
	file_signalfeed_proto_depIdxs = nil
}
