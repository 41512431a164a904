package vulkan

import vk "github.com/goki/vulkan"

type featureFlag struct {
	name string
	get  func(*vk.PhysicalDeviceFeatures) vk.Bool32
}

// featureFlags maps every feature flag to its accessor so requirement
// checks can report which flag is missing by name.
var featureFlags = []featureFlag{
	{"robustBufferAccess", func(f *vk.PhysicalDeviceFeatures) vk.Bool32 { return f.RobustBufferAccess }},
	{"fullDrawIndexUint32", func(f *vk.PhysicalDeviceFeatures) vk.Bool32 { return f.FullDrawIndexUint32 }},
	{"imageCubeArray", func(f *vk.PhysicalDeviceFeatures) vk.Bool32 { return f.ImageCubeArray }},
	{"independentBlend", func(f *vk.PhysicalDeviceFeatures) vk.Bool32 { return f.IndependentBlend }},
	{"geometryShader", func(f *vk.PhysicalDeviceFeatures) vk.Bool32 { return f.GeometryShader }},
	{"tessellationShader", func(f *vk.PhysicalDeviceFeatures) vk.Bool32 { return f.TessellationShader }},
	{"sampleRateShading", func(f *vk.PhysicalDeviceFeatures) vk.Bool32 { return f.SampleRateShading }},
	{"dualSrcBlend", func(f *vk.PhysicalDeviceFeatures) vk.Bool32 { return f.DualSrcBlend }},
	{"logicOp", func(f *vk.PhysicalDeviceFeatures) vk.Bool32 { return f.LogicOp }},
	{"multiDrawIndirect", func(f *vk.PhysicalDeviceFeatures) vk.Bool32 { return f.MultiDrawIndirect }},
	{"drawIndirectFirstInstance", func(f *vk.PhysicalDeviceFeatures) vk.Bool32 { return f.DrawIndirectFirstInstance }},
	{"depthClamp", func(f *vk.PhysicalDeviceFeatures) vk.Bool32 { return f.DepthClamp }},
	{"depthBiasClamp", func(f *vk.PhysicalDeviceFeatures) vk.Bool32 { return f.DepthBiasClamp }},
	{"fillModeNonSolid", func(f *vk.PhysicalDeviceFeatures) vk.Bool32 { return f.FillModeNonSolid }},
	{"depthBounds", func(f *vk.PhysicalDeviceFeatures) vk.Bool32 { return f.DepthBounds }},
	{"wideLines", func(f *vk.PhysicalDeviceFeatures) vk.Bool32 { return f.WideLines }},
	{"largePoints", func(f *vk.PhysicalDeviceFeatures) vk.Bool32 { return f.LargePoints }},
	{"alphaToOne", func(f *vk.PhysicalDeviceFeatures) vk.Bool32 { return f.AlphaToOne }},
	{"multiViewport", func(f *vk.PhysicalDeviceFeatures) vk.Bool32 { return f.MultiViewport }},
	{"samplerAnisotropy", func(f *vk.PhysicalDeviceFeatures) vk.Bool32 { return f.SamplerAnisotropy }},
	{"textureCompressionETC2", func(f *vk.PhysicalDeviceFeatures) vk.Bool32 { return f.TextureCompressionETC2 }},
	{"textureCompressionASTC_LDR", func(f *vk.PhysicalDeviceFeatures) vk.Bool32 { return f.TextureCompressionASTC_LDR }},
	{"textureCompressionBC", func(f *vk.PhysicalDeviceFeatures) vk.Bool32 { return f.TextureCompressionBC }},
	{"occlusionQueryPrecise", func(f *vk.PhysicalDeviceFeatures) vk.Bool32 { return f.OcclusionQueryPrecise }},
	{"pipelineStatisticsQuery", func(f *vk.PhysicalDeviceFeatures) vk.Bool32 { return f.PipelineStatisticsQuery }},
	{"vertexPipelineStoresAndAtomics", func(f *vk.PhysicalDeviceFeatures) vk.Bool32 { return f.VertexPipelineStoresAndAtomics }},
	{"fragmentStoresAndAtomics", func(f *vk.PhysicalDeviceFeatures) vk.Bool32 { return f.FragmentStoresAndAtomics }},
	{"shaderTessellationAndGeometryPointSize", func(f *vk.PhysicalDeviceFeatures) vk.Bool32 { return f.ShaderTessellationAndGeometryPointSize }},
	{"shaderImageGatherExtended", func(f *vk.PhysicalDeviceFeatures) vk.Bool32 { return f.ShaderImageGatherExtended }},
	{"shaderStorageImageExtendedFormats", func(f *vk.PhysicalDeviceFeatures) vk.Bool32 { return f.ShaderStorageImageExtendedFormats }},
	{"shaderStorageImageMultisample", func(f *vk.PhysicalDeviceFeatures) vk.Bool32 { return f.ShaderStorageImageMultisample }},
	{"shaderStorageImageReadWithoutFormat", func(f *vk.PhysicalDeviceFeatures) vk.Bool32 { return f.ShaderStorageImageReadWithoutFormat }},
	{"shaderStorageImageWriteWithoutFormat", func(f *vk.PhysicalDeviceFeatures) vk.Bool32 { return f.ShaderStorageImageWriteWithoutFormat }},
	{"shaderUniformBufferArrayDynamicIndexing", func(f *vk.PhysicalDeviceFeatures) vk.Bool32 { return f.ShaderUniformBufferArrayDynamicIndexing }},
	{"shaderSampledImageArrayDynamicIndexing", func(f *vk.PhysicalDeviceFeatures) vk.Bool32 { return f.ShaderSampledImageArrayDynamicIndexing }},
	{"shaderStorageBufferArrayDynamicIndexing", func(f *vk.PhysicalDeviceFeatures) vk.Bool32 { return f.ShaderStorageBufferArrayDynamicIndexing }},
	{"shaderStorageImageArrayDynamicIndexing", func(f *vk.PhysicalDeviceFeatures) vk.Bool32 { return f.ShaderStorageImageArrayDynamicIndexing }},
	{"shaderClipDistance", func(f *vk.PhysicalDeviceFeatures) vk.Bool32 { return f.ShaderClipDistance }},
	{"shaderCullDistance", func(f *vk.PhysicalDeviceFeatures) vk.Bool32 { return f.ShaderCullDistance }},
	{"shaderFloat64", func(f *vk.PhysicalDeviceFeatures) vk.Bool32 { return f.ShaderFloat64 }},
	{"shaderInt64", func(f *vk.PhysicalDeviceFeatures) vk.Bool32 { return f.ShaderInt64 }},
	{"shaderInt16", func(f *vk.PhysicalDeviceFeatures) vk.Bool32 { return f.ShaderInt16 }},
	{"shaderResourceResidency", func(f *vk.PhysicalDeviceFeatures) vk.Bool32 { return f.ShaderResourceResidency }},
	{"shaderResourceMinLod", func(f *vk.PhysicalDeviceFeatures) vk.Bool32 { return f.ShaderResourceMinLod }},
	{"sparseBinding", func(f *vk.PhysicalDeviceFeatures) vk.Bool32 { return f.SparseBinding }},
	{"sparseResidencyBuffer", func(f *vk.PhysicalDeviceFeatures) vk.Bool32 { return f.SparseResidencyBuffer }},
	{"sparseResidencyImage2D", func(f *vk.PhysicalDeviceFeatures) vk.Bool32 { return f.SparseResidencyImage2D }},
	{"sparseResidencyImage3D", func(f *vk.PhysicalDeviceFeatures) vk.Bool32 { return f.SparseResidencyImage3D }},
	{"sparseResidency2Samples", func(f *vk.PhysicalDeviceFeatures) vk.Bool32 { return f.SparseResidency2Samples }},
	{"sparseResidency4Samples", func(f *vk.PhysicalDeviceFeatures) vk.Bool32 { return f.SparseResidency4Samples }},
	{"sparseResidency8Samples", func(f *vk.PhysicalDeviceFeatures) vk.Bool32 { return f.SparseResidency8Samples }},
	{"sparseResidency16Samples", func(f *vk.PhysicalDeviceFeatures) vk.Bool32 { return f.SparseResidency16Samples }},
	{"sparseResidencyAliased", func(f *vk.PhysicalDeviceFeatures) vk.Bool32 { return f.SparseResidencyAliased }},
	{"variableMultisampleRate", func(f *vk.PhysicalDeviceFeatures) vk.Bool32 { return f.VariableMultisampleRate }},
	{"inheritedQueries", func(f *vk.PhysicalDeviceFeatures) vk.Bool32 { return f.InheritedQueries }},
}

// missingFeature returns the name of the first flag set in required
// that the device does not offer, or "" when every required flag is
// present.
func missingFeature(required, available *vk.PhysicalDeviceFeatures) string {
	for _, flag := range featureFlags {
		if flag.get(required) == vk.True && flag.get(available) != vk.True {
			return flag.name
		}
	}
	return ""
}
