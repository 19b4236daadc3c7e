package v1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "rpg.character.v1.CharacterService"

// CharacterServiceServer is the server API for the character service.
// Messages are google.protobuf.Struct documents; field names are snake_case.
type CharacterServiceServer interface {
	CreateCharacter(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetCharacter(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListCharacters(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteCharacter(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateRace(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateBackground(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateClasses(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateAbilityScores(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListPendingChoices(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetPendingChoice(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ResolveChoice(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UndoChoice(context.Context, *structpb.Struct) (*structpb.Struct, error)
	PopulateFixedGrants(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AddEquipment(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateEquipment(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetStats(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryMethod func(CharacterServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func methodDesc(name string, call unaryMethod) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(
			srv interface{},
			ctx context.Context,
			dec func(interface{}) error,
			interceptor grpc.UnaryServerInterceptor,
		) (interface{}, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(CharacterServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: "/" + ServiceName + "/" + name,
			}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv.(CharacterServiceServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ServiceDesc describes the character service for grpc.Server registration
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CharacterServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		methodDesc("CreateCharacter", CharacterServiceServer.CreateCharacter),
		methodDesc("GetCharacter", CharacterServiceServer.GetCharacter),
		methodDesc("ListCharacters", CharacterServiceServer.ListCharacters),
		methodDesc("DeleteCharacter", CharacterServiceServer.DeleteCharacter),
		methodDesc("UpdateRace", CharacterServiceServer.UpdateRace),
		methodDesc("UpdateBackground", CharacterServiceServer.UpdateBackground),
		methodDesc("UpdateClasses", CharacterServiceServer.UpdateClasses),
		methodDesc("UpdateAbilityScores", CharacterServiceServer.UpdateAbilityScores),
		methodDesc("ListPendingChoices", CharacterServiceServer.ListPendingChoices),
		methodDesc("GetPendingChoice", CharacterServiceServer.GetPendingChoice),
		methodDesc("ResolveChoice", CharacterServiceServer.ResolveChoice),
		methodDesc("UndoChoice", CharacterServiceServer.UndoChoice),
		methodDesc("PopulateFixedGrants", CharacterServiceServer.PopulateFixedGrants),
		methodDesc("AddEquipment", CharacterServiceServer.AddEquipment),
		methodDesc("UpdateEquipment", CharacterServiceServer.UpdateEquipment),
		methodDesc("GetStats", CharacterServiceServer.GetStats),
	},
	Streams: []grpc.StreamDesc{},
}

// RegisterCharacterServiceServer registers the handler with a gRPC server
func RegisterCharacterServiceServer(s grpc.ServiceRegistrar, srv CharacterServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}
